package wants

import (
	"time"

	"github.com/wantsapp/wants-backend/model"
)

// Want is the client-facing projection of a stored want. It exposes the
// location scope as the caller supplied it (canonical address + radius) and
// hides resolved coordinates, place ids and raw image references; the image
// surfaces only as a short-lived signed URL.
type Want struct {
	Id          string              `json:"id"`
	CreatorId   string              `json:"creatorId"`
	AdminIds    []string            `json:"adminIds"`
	MemberIds   []string            `json:"memberIds"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Visibility  Visibility          `json:"visibility"`
	ImageUrl    string              `json:"imageUrl,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type Visibility struct {
	VisibleTo model.WantVisibleTo `json:"visibleTo"`
	TargetIds []string            `json:"targetIds,omitempty"`
	Location  *Location           `json:"location,omitempty"`
}

type Location struct {
	Address        string `json:"address"`
	RadiusInMeters int    `json:"radiusInMeters"`
}
