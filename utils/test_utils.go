package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wantsapp/wants-backend/model"
	"gorm.io/gorm"
)

// TestCreateUser seeds a user row and returns its id.
func TestCreateUser(t *testing.T, db *gorm.DB, userId string, name string) string {
	t.Helper()
	user := model.User{
		Id:          userId,
		CreatedAt:   time.Now(),
		DisplayName: name,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.Id
}

// TestCreateFriendship seeds both mirrored rows of a friendship, the way the
// friend management service writes them.
func TestCreateFriendship(t *testing.T, db *gorm.DB, userId string, friendId string) {
	t.Helper()
	now := time.Now()
	rows := []model.Friendship{
		{Id: uuid.New().String(), CreatedAt: now, UserId: userId, FriendId: friendId},
		{Id: uuid.New().String(), CreatedAt: now, UserId: friendId, FriendId: userId},
	}
	require.NoError(t, db.Create(&rows).Error)
}
