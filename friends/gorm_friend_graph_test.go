package friends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wantsapp/wants-backend/utils"
	"github.com/wantsapp/wants-backend/utils/dotenv"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

func TestMain(m *testing.M) {
	if err := dotenv.LoadDotEnvsInTests(); err != nil {
		Logger.Log.Fatalln("fail to load env : ", err)
	}
	m.Run()
}

func TestGormGraph(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGormGraph(db)
	ctx := context.Background()

	utils.TestCreateUser(t, db, "alice", "Alice")
	utils.TestCreateUser(t, db, "bob", "Bob")
	utils.TestCreateUser(t, db, "carol", "Carol")
	utils.TestCreateFriendship(t, db, "alice", "bob")
	utils.TestCreateFriendship(t, db, "alice", "carol")

	areFriends, err := graph.AreFriends(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, areFriends)

	// Friendship rows are mirrored, so the relation reads the same from
	// either side.
	areFriends, err = graph.AreFriends(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, areFriends)

	areFriends, err = graph.AreFriends(ctx, "bob", "carol")
	require.NoError(t, err)
	assert.False(t, areFriends)

	friendIds, err := graph.ListFriends(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "carol"}, friendIds)

	friendIds, err = graph.ListFriends(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, friendIds)

	friendIds, err = graph.ListFriends(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, friendIds)
}
