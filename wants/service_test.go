package wants

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wantsapp/wants-backend/friends"
	"github.com/wantsapp/wants-backend/geocode"
	"github.com/wantsapp/wants-backend/imagestore"
	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/moderation"
	"github.com/wantsapp/wants-backend/storage"
	"github.com/wantsapp/wants-backend/users"
	"github.com/wantsapp/wants-backend/utils"
)

type serviceFixture struct {
	service    *Service
	store      *storage.FakeWantStore
	lookup     *users.FakeLookup
	graph      *friends.FakeGraph
	geocoder   *geocode.FakeGeocoder
	classifier *moderation.FakeClassifier
	images     *imagestore.FakeImageStore
}

func newServiceFixture(userIds ...string) *serviceFixture {
	f := &serviceFixture{
		store:      storage.NewFakeWantStore(),
		lookup:     users.NewFakeLookup(userIds...),
		graph:      friends.NewFakeGraph(),
		geocoder:   geocode.NewFakeGeocoder(),
		classifier: moderation.NewFakeClassifier(),
		images:     imagestore.NewFakeImageStore(),
	}
	f.service = NewService(ServiceSettings{
		Store:       f.store,
		Users:       f.lookup,
		FriendGraph: f.graph,
		Geocoder:    f.geocoder,
		Moderation:  f.classifier,
		Images:      f.images,
	})
	return f
}

func stringPtr(s string) *string {
	return &s
}

func TestCreateWant(t *testing.T) {
	f := newServiceFixture("alice")

	want, err := f.service.CreateWant(context.Background(), CreateWantInput{
		CreatorId:   "alice",
		Title:       "Pickup soccer this weekend",
		Description: "Looking for players near the park",
		Visibility:  VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, want.Id)
	assert.Equal(t, "alice", want.CreatorId)
	assert.Equal(t, []string{"alice"}, want.AdminIds)
	assert.Empty(t, want.MemberIds)
	assert.Equal(t, model.WantVisibleToPublic, want.Visibility.VisibleTo)
	assert.False(t, want.CreatedAt.IsZero())
	assert.Equal(t, want.CreatedAt, want.UpdatedAt)
	assert.Equal(t, 1, f.store.Len())
}

func TestCreateWantValidation(t *testing.T) {
	f := newServiceFixture("alice")
	ctx := context.Background()

	_, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "ghost",
		Title:      "anything",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	assert.True(t, utils.IsNotFound(err))

	_, err = f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "alice",
		Title:      "   ",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	assert.True(t, utils.IsInvalidArgument(err))

	// Failed validation writes nothing.
	assert.Equal(t, 0, f.store.Len())
}

func TestCreateWantModerationGate(t *testing.T) {
	f := newServiceFixture("alice")
	f.classifier.FlagPhrase("badword", "Toxic")

	_, err := f.service.CreateWant(context.Background(), CreateWantInput{
		CreatorId:  "alice",
		Title:      "contains badword here",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.True(t, utils.IsExplicitContent(err))
	assert.Equal(t, 0, f.store.Len())

	_, err = f.service.CreateWant(context.Background(), CreateWantInput{
		CreatorId:   "alice",
		Title:       "clean title",
		Description: "but a badword description",
		Visibility:  VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.True(t, utils.IsExplicitContent(err))
	assert.Equal(t, 0, f.store.Len())
}

func TestGetWant(t *testing.T) {
	f := newServiceFixture("alice")

	created, err := f.service.CreateWant(context.Background(), CreateWantInput{
		CreatorId:  "alice",
		Title:      "Board game night",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToFriends},
	})
	require.NoError(t, err)

	fetched, err := f.service.GetWant(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(created, fetched))

	_, err = f.service.GetWant(context.Background(), "no-such-want")
	assert.True(t, utils.IsNotFound(err))
}

func TestUpdateWant(t *testing.T) {
	f := newServiceFixture("alice", "bob", "carol")
	ctx := context.Background()

	created, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "alice",
		Title:      "Hiking group",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateWant(ctx, created.Id, UpdateWantInput{
		Title:       stringPtr("Weekend hiking group"),
		Description: stringPtr("Mount Royal, Saturday mornings"),
		MemberIds:   []string{"bob", "carol", "bob"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Weekend hiking group", updated.Title)
	assert.Equal(t, "Mount Royal, Saturday mornings", updated.Description)
	assert.Equal(t, []string{"bob", "carol"}, updated.MemberIds)
	assert.Equal(t, []string{"alice"}, updated.AdminIds)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateWantNoOp(t *testing.T) {
	f := newServiceFixture("alice")
	ctx := context.Background()

	created, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "alice",
		Title:      "Carpool to work",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	unchanged, err := f.service.UpdateWant(ctx, created.Id, UpdateWantInput{})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(created, unchanged))
}

func TestUpdateWantValidation(t *testing.T) {
	f := newServiceFixture("alice", "bob")
	ctx := context.Background()

	created, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "alice",
		Title:      "Study group",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateWant(ctx, "no-such-want", UpdateWantInput{Title: stringPtr("x")})
	assert.True(t, utils.IsNotFound(err))

	_, err = f.service.UpdateWant(ctx, created.Id, UpdateWantInput{AdminIds: []string{}})
	assert.True(t, utils.IsInvalidArgument(err))

	_, err = f.service.UpdateWant(ctx, created.Id, UpdateWantInput{AdminIds: []string{"ghost"}})
	assert.True(t, utils.IsNotFound(err))

	// Admins and members must stay disjoint, including against the lists the
	// update leaves untouched.
	_, err = f.service.UpdateWant(ctx, created.Id, UpdateWantInput{MemberIds: []string{"alice"}})
	assert.True(t, utils.IsInvalidArgument(err))

	_, err = f.service.UpdateWant(ctx, created.Id, UpdateWantInput{
		AdminIds:  []string{"alice", "bob"},
		MemberIds: []string{"bob"},
	})
	assert.True(t, utils.IsInvalidArgument(err))

	// None of the failures above changed the stored want.
	after, err := f.service.GetWant(ctx, created.Id)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(created, after))
}

func TestUpdateWantImage(t *testing.T) {
	f := newServiceFixture("alice")
	ctx := context.Background()

	created, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "alice",
		Title:      "Lost cat",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateWant(ctx, created.Id, UpdateWantInput{
		Image: &ImageUpload{Data: []byte("gifdata"), MimeType: "image/gif"},
	})
	assert.True(t, utils.IsInvalidArgument(err))

	f.classifier.FlagImagePattern([]byte("nsfw"), "Adult")
	_, err = f.service.UpdateWant(ctx, created.Id, UpdateWantInput{
		Image: &ImageUpload{Data: []byte("nsfw-bytes"), MimeType: "image/png"},
	})
	assert.True(t, utils.IsExplicitContent(err))

	updated, err := f.service.UpdateWant(ctx, created.Id, UpdateWantInput{
		Image: &ImageUpload{Data: []byte("catphoto"), MimeType: "image/png"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.ImageUrl)
}

func TestUpdateWantVisibilityWithLocation(t *testing.T) {
	f := newServiceFixture("alice")
	ctx := context.Background()
	f.geocoder.AddResult("the park", &geocode.Result{
		FormattedAddress: "Jeanne-Mance Park, Montreal, QC, Canada",
		PlaceId:          "place_park",
		Latitude:         45.51,
		Longitude:        -73.58,
	})

	created, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "alice",
		Title:      "Frisbee anyone",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateWant(ctx, created.Id, UpdateWantInput{
		Visibility: &VisibilityInput{
			VisibleTo: model.WantVisibleToPublic,
			Location:  &LocationInput{Address: "the park", RadiusInMeters: 3000},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Visibility.Location)
	assert.Equal(t, "Jeanne-Mance Park, Montreal, QC, Canada", updated.Visibility.Location.Address)
	assert.Equal(t, 3000, updated.Visibility.Location.RadiusInMeters)
	assert.Equal(t, 1, f.geocoder.Calls)
}

// Follows the life of a small friend group end to end: wants of every
// visibility kind are created and the home feed of each user shows exactly
// what that user may see, ranked.
func TestHomeFeedEndToEnd(t *testing.T) {
	f := newServiceFixture("alice", "bob", "carol")
	ctx := context.Background()
	f.graph.Befriend("alice", "bob")

	bobsWant, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "bob",
		Title:      "Movie night",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToFriends},
	})
	require.NoError(t, err)

	carolsPublic, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId:  "carol",
		Title:      "Free couch",
		Visibility: VisibilityInput{VisibleTo: model.WantVisibleToPublic},
	})
	require.NoError(t, err)

	carolsTargeted, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId: "carol",
		Title:     "Surprise party for bob",
		Visibility: VisibilityInput{
			VisibleTo: model.WantVisibleToSpecific,
			TargetIds: []string{"alice"},
		},
	})
	require.NoError(t, err)

	feed, err := f.service.GetHomeFeed(ctx, "alice", nil)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	// Targeted visibility outranks friends, which outranks public; all other
	// terms are equal here.
	assert.Equal(t, carolsTargeted.Id, feed[0].Id)
	assert.Equal(t, bobsWant.Id, feed[1].Id)
	assert.Equal(t, carolsPublic.Id, feed[2].Id)

	// Bob is not targeted by the surprise party want and carol is not his
	// friend, so he only sees the public want.
	feed, err = f.service.GetHomeFeed(ctx, "bob", nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, carolsPublic.Id, feed[0].Id)

	// Carol sees only the public want; her own targeted want does not target
	// her and nobody is her friend.
	feed, err = f.service.GetHomeFeed(ctx, "carol", nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, carolsPublic.Id, feed[0].Id)
}

func TestHomeFeedLocationScoped(t *testing.T) {
	f := newServiceFixture("alice", "bob")
	ctx := context.Background()
	f.geocoder.AddResult("downtown", &geocode.Result{
		FormattedAddress: "Downtown Montreal, QC, Canada",
		Latitude:         45.5,
		Longitude:        -73.57,
	})

	_, err := f.service.CreateWant(ctx, CreateWantInput{
		CreatorId: "bob",
		Title:     "Lunch meetup downtown",
		Visibility: VisibilityInput{
			VisibleTo: model.WantVisibleToPublic,
			Location:  &LocationInput{Address: "downtown", RadiusInMeters: 2000},
		},
	})
	require.NoError(t, err)

	// In range.
	nearby := &model.GeolocationCoordinates{Latitude: 45.5, Longitude: -73.58}
	feed, err := f.service.GetHomeFeed(ctx, "alice", nearby)
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	// Out of range.
	faraway := &model.GeolocationCoordinates{Latitude: 46.8, Longitude: -71.2}
	feed, err = f.service.GetHomeFeed(ctx, "alice", faraway)
	require.NoError(t, err)
	assert.Empty(t, feed)

	// No origin supplied, the scope neither filters nor scores.
	feed, err = f.service.GetHomeFeed(ctx, "alice", nil)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}
