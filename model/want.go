package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WantVisibleTo is the access policy kind attached to a want.
type WantVisibleTo string

const (
	WantVisibleToPublic   WantVisibleTo = "public"
	WantVisibleToFriends  WantVisibleTo = "friends"
	WantVisibleToSpecific WantVisibleTo = "specific"
)

// GeolocationCoordinates is a resolved latitude/longitude pair. Coordinates
// are always derived from geocoding, never accepted from clients.
type GeolocationCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WantLocation is the optional geographic narrowing of a visibility policy.
// Address holds the geocoder's canonical formatted address, not the raw
// client input. Persisted as a single jsonb column since all location
// filtering happens in process.
type WantLocation struct {
	Address        string                 `json:"address"`
	GooglePlaceId  string                 `json:"googlePlaceId,omitempty"`
	Coordinates    GeolocationCoordinates `json:"coordinates"`
	RadiusInMeters int                    `json:"radiusInMeters"`
}

func (l *WantLocation) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported want location column type %T", value)
	}
	return json.Unmarshal(raw, l)
}

func (l WantLocation) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// WantVisibility is the tagged access policy of a want. Exactly one kind is
// active; TargetIds is populated only for the specific kind and Location is
// an orthogonal optional narrowing.
type WantVisibility struct {
	VisibleTo WantVisibleTo  `gorm:"index"`
	TargetIds pq.StringArray `gorm:"type:text[]"`
	Location  *WantLocation  `gorm:"type:jsonb"`
}

// WantImageRef points at the stored binary of a want's single image. It is
// serialized into the image jsonb column; clients only ever see a signed URL
// derived from it.
type WantImageRef struct {
	Bucket   string `json:"bucket"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
}

/*

Want is a user-created post describing an intent, visible to a restricted
audience.

Id: primary key
CreatedAt: time when the want was created
UpdatedAt: bumped on every mutation, always >= CreatedAt
DeletedAt: soft-delete marker, excluded from all reads once set
CreatorId: the user who created the want, implicit initial administrator
AdminIds: users allowed to mutate the want, never empty while live
MemberIds: users who joined the want, disjoint from AdminIds
Title: required, moderation-checked plain text
Description: optional, moderation-checked plain text
Visibility: embedded tagged access policy, see WantVisibility
Image: optional single image reference, jsonb-serialized WantImageRef

*/
type Want struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	CreatorId   string         `gorm:"index"`
	AdminIds    pq.StringArray `gorm:"type:text[]"`
	MemberIds   pq.StringArray `gorm:"type:text[]"`
	Title       string
	Description string
	Visibility  WantVisibility `gorm:"embedded"`
	Image       datatypes.JSON
}

// ImageRef decodes the stored image reference, returning nil when the want
// has no image.
func (w *Want) ImageRef() (*WantImageRef, error) {
	if len(w.Image) == 0 {
		return nil, nil
	}
	var ref WantImageRef
	if err := json.Unmarshal(w.Image, &ref); err != nil {
		return nil, errors.Wrap(err, "corrupt want image reference")
	}
	return &ref, nil
}

// SetImageRef encodes the image reference into the jsonb column.
func (w *Want) SetImageRef(ref *WantImageRef) error {
	raw, err := json.Marshal(ref)
	if err != nil {
		return errors.Wrap(err, "encode want image reference")
	}
	w.Image = datatypes.JSON(raw)
	return nil
}
