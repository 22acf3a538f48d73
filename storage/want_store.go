package storage

import (
	"context"

	"github.com/wantsapp/wants-backend/model"
)

// WantStore is the persistence boundary for the want aggregate. All reads
// exclude soft-deleted wants. The three List queries are exactly the access
// paths the home feed assembler unions; they must stay disjoint by
// construction (each filters on a single visibility kind).
type WantStore interface {
	Create(ctx context.Context, want *model.Want) error

	// GetById returns nil when the want does not exist or is soft-deleted.
	GetById(ctx context.Context, wantId string) (*model.Want, error)

	// Update loads the want, applies mutate to it and persists the result,
	// all within a single transaction. Returning an error from mutate aborts
	// the transaction. Returns the persisted want.
	Update(ctx context.Context, wantId string, mutate func(want *model.Want) error) (*model.Want, error)

	// ListPublic returns all wants with the public visibility kind.
	ListPublic(ctx context.Context) ([]*model.Want, error)

	// ListFriendsVisibleByCreators returns wants with the friends visibility
	// kind whose creator is in creatorIds.
	ListFriendsVisibleByCreators(ctx context.Context, creatorIds []string) ([]*model.Want, error)

	// ListTargetingUser returns wants with the specific visibility kind whose
	// target list contains userId.
	ListTargetingUser(ctx context.Context, userId string) ([]*model.Want, error)
}
