package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a thin local projection of an identity managed by the external
// identity provider. Only the id is authoritative here; display fields are
// cached for development seeding.
type User struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	DisplayName string
	PhotoUrl    string
}
