package wants

import (
	"context"
	"sync"

	"github.com/wantsapp/wants-backend/friends"
	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/storage"
	"github.com/wantsapp/wants-backend/users"
	"github.com/wantsapp/wants-backend/utils"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

// CandidateAssembler produces the set of wants a requesting user is
// authorized to see, before ranking. The three access paths (friends'
// wants, wants targeted at the user, public wants) are disjoint by
// visibility kind; they are queried independently and unioned.
type CandidateAssembler struct {
	store       storage.WantStore
	friendGraph friends.Graph
	users       users.Lookup
}

func NewCandidateAssembler(store storage.WantStore, friendGraph friends.Graph, userLookup users.Lookup) *CandidateAssembler {
	return &CandidateAssembler{store: store, friendGraph: friendGraph, users: userLookup}
}

// Assemble returns the deduplicated candidate set for userId. When origin is
// non-nil, location-scoped wants outside their own radius are dropped; when
// origin is nil all location-scoped wants pass, which is the documented
// fallback for clients that withhold coordinates.
func (a *CandidateAssembler) Assemble(ctx context.Context, userId string, origin *model.GeolocationCoordinates) ([]*model.Want, error) {
	exists, err := a.users.Exists(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NewNotFoundError("User", userId)
	}

	// The three path queries are independent and run concurrently. Each
	// writes into its own slot so the merged order is fixed regardless of
	// completion order, which keeps stable-sort tie-breaking deterministic.
	var (
		results [3][]*model.Want
		errs    [3]error
		wg      sync.WaitGroup
	)
	wg.Add(3)

	go func() {
		defer wg.Done()
		results[0], errs[0] = a.listFriendsWants(ctx, userId)
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = a.store.ListTargetingUser(ctx, userId)
	}()
	go func() {
		defer wg.Done()
		results[2], errs[2] = a.store.ListPublic(ctx)
	}()

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	seen := map[string]bool{}
	var candidates []*model.Want
	for _, pathWants := range results {
		for _, want := range pathWants {
			if seen[want.Id] {
				// The paths are disjoint by visibility kind; an overlap means
				// a query regression, not a legitimate state.
				Logger.Log.Warnf("want %s matched more than one feed access path", want.Id)
				continue
			}
			if !withinLocationScope(want, origin) {
				continue
			}
			seen[want.Id] = true
			candidates = append(candidates, want)
		}
	}
	return candidates, nil
}

func (a *CandidateAssembler) listFriendsWants(ctx context.Context, userId string) ([]*model.Want, error) {
	friendIds, err := a.friendGraph.ListFriends(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(friendIds) == 0 {
		return nil, nil
	}
	return a.store.ListFriendsVisibleByCreators(ctx, friendIds)
}

// withinLocationScope applies the radius filter of a want's location scope.
// Wants without a scope always pass, as does everything when the requester
// supplied no origin.
func withinLocationScope(want *model.Want, origin *model.GeolocationCoordinates) bool {
	location := want.Visibility.Location
	if location == nil || origin == nil {
		return true
	}
	distance := utils.GreatCircleDistanceMeters(*origin, location.Coordinates)
	return distance <= float64(location.RadiusInMeters)
}
