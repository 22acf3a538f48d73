package friends

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wantsapp/wants-backend/model"
	"gorm.io/gorm"
)

// GormGraph reads the mirrored friendship rows out of postgres. Because every
// friendship is stored in both directions, both operations are single indexed
// lookups on user_id.
type GormGraph struct {
	db *gorm.DB
}

func NewGormGraph(db *gorm.DB) *GormGraph {
	return &GormGraph{db: db}
}

func (g *GormGraph) AreFriends(ctx context.Context, userId string, otherUserId string) (bool, error) {
	var count int64
	res := g.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userId, otherUserId).
		Count(&count)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "query friendship")
	}
	return count > 0, nil
}

func (g *GormGraph) ListFriends(ctx context.Context, userId string) ([]string, error) {
	var friendIds []string
	res := g.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("user_id = ?", userId).
		Order("created_at asc").
		Pluck("friend_id", &friendIds)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list friends")
	}
	return friendIds, nil
}
