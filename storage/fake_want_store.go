package storage

import (
	"context"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/utils"
)

// FakeWantStore is an in-memory WantStore for tests. Wants are deep-copied on
// the way in and out so callers cannot mutate stored state by accident, and
// insertion order is preserved so list results are deterministic.
type FakeWantStore struct {
	mu    sync.Mutex
	wants map[string]*model.Want
	order []string
}

func NewFakeWantStore() *FakeWantStore {
	return &FakeWantStore{wants: map[string]*model.Want{}}
}

func cloneWant(want *model.Want) (*model.Want, error) {
	var copied model.Want
	if err := copier.CopyWithOption(&copied, want, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "clone want")
	}
	return &copied, nil
}

// Len reports how many live wants the store holds, letting tests assert that
// a rejected operation wrote nothing.
func (s *FakeWantStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, want := range s.wants {
		if !want.DeletedAt.Valid {
			count++
		}
	}
	return count
}

func (s *FakeWantStore) Create(ctx context.Context, want *model.Want) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied, err := cloneWant(want)
	if err != nil {
		return err
	}
	s.wants[want.Id] = copied
	s.order = append(s.order, want.Id)
	return nil
}

func (s *FakeWantStore) GetById(ctx context.Context, wantId string) (*model.Want, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.wants[wantId]
	if !ok || want.DeletedAt.Valid {
		return nil, nil
	}
	return cloneWant(want)
}

func (s *FakeWantStore) Update(ctx context.Context, wantId string, mutate func(want *model.Want) error) (*model.Want, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.wants[wantId]
	if !ok || stored.DeletedAt.Valid {
		return nil, nil
	}
	// Mutate a copy so a failed mutate leaves the stored want untouched,
	// mirroring the transactional rollback of the real store.
	copied, err := cloneWant(stored)
	if err != nil {
		return nil, err
	}
	if err := mutate(copied); err != nil {
		return nil, err
	}
	s.wants[wantId] = copied
	return cloneWant(copied)
}

func (s *FakeWantStore) list(filter func(want *model.Want) bool) ([]*model.Want, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Want
	for _, id := range s.order {
		want := s.wants[id]
		if want.DeletedAt.Valid || !filter(want) {
			continue
		}
		copied, err := cloneWant(want)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *FakeWantStore) ListPublic(ctx context.Context) ([]*model.Want, error) {
	return s.list(func(want *model.Want) bool {
		return want.Visibility.VisibleTo == model.WantVisibleToPublic
	})
}

func (s *FakeWantStore) ListFriendsVisibleByCreators(ctx context.Context, creatorIds []string) ([]*model.Want, error) {
	if len(creatorIds) == 0 {
		return nil, nil
	}
	return s.list(func(want *model.Want) bool {
		return want.Visibility.VisibleTo == model.WantVisibleToFriends &&
			utils.ContainsString(creatorIds, want.CreatorId)
	})
}

func (s *FakeWantStore) ListTargetingUser(ctx context.Context, userId string) ([]*model.Want, error) {
	return s.list(func(want *model.Want) bool {
		return want.Visibility.VisibleTo == model.WantVisibleToSpecific &&
			utils.ContainsString(want.Visibility.TargetIds, userId)
	})
}
