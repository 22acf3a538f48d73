package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wantsapp/wants-backend/model"
	"gorm.io/gorm"
)

// GormWantStore is the postgres reference implementation of WantStore.
type GormWantStore struct {
	db *gorm.DB
}

func NewGormWantStore(db *gorm.DB) *GormWantStore {
	return &GormWantStore{db: db}
}

func (s *GormWantStore) Create(ctx context.Context, want *model.Want) error {
	if err := s.db.WithContext(ctx).Create(want).Error; err != nil {
		return errors.Wrap(err, "create want")
	}
	return nil
}

func (s *GormWantStore) GetById(ctx context.Context, wantId string) (*model.Want, error) {
	var want model.Want
	// gorm.DeletedAt on the model keeps soft-deleted rows out of every query.
	res := s.db.WithContext(ctx).Where("id = ?", wantId).Limit(1).Find(&want)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "get want by id")
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &want, nil
}

func (s *GormWantStore) Update(ctx context.Context, wantId string, mutate func(want *model.Want) error) (*model.Want, error) {
	var updated *model.Want
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var want model.Want
		res := tx.Where("id = ?", wantId).Limit(1).Find(&want)
		if res.Error != nil {
			return errors.Wrap(res.Error, "load want for update")
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := mutate(&want); err != nil {
			return err
		}
		if err := tx.Save(&want).Error; err != nil {
			return errors.Wrap(err, "save want")
		}
		updated = &want
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *GormWantStore) ListPublic(ctx context.Context) ([]*model.Want, error) {
	var wants []*model.Want
	res := s.db.WithContext(ctx).
		Where("visible_to = ?", model.WantVisibleToPublic).
		Order("created_at asc").
		Find(&wants)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list public wants")
	}
	return wants, nil
}

func (s *GormWantStore) ListFriendsVisibleByCreators(ctx context.Context, creatorIds []string) ([]*model.Want, error) {
	if len(creatorIds) == 0 {
		return nil, nil
	}
	var wants []*model.Want
	res := s.db.WithContext(ctx).
		Where("visible_to = ? AND creator_id IN ?", model.WantVisibleToFriends, creatorIds).
		Order("created_at asc").
		Find(&wants)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list friends wants")
	}
	return wants, nil
}

func (s *GormWantStore) ListTargetingUser(ctx context.Context, userId string) ([]*model.Want, error) {
	var wants []*model.Want
	res := s.db.WithContext(ctx).
		Where("visible_to = ? AND ? = ANY(target_ids)", model.WantVisibleToSpecific, userId).
		Order("created_at asc").
		Find(&wants)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list targeted wants")
	}
	return wants, nil
}
