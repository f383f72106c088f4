package models

import (
	"time"

	"github.com/google/uuid"
)

// SplitwiseConnection stores the Splitwise OAuth tokens for one user.
type SplitwiseConnection struct {
	DefaultModel
	User            User      `json:"-"`
	UserID          uuid.UUID `gorm:"uniqueIndex"`
	SplitwiseUserID int64
	AccessToken     string `json:"-"`
	RefreshToken    string `json:"-"`
	TokenExpiry     time.Time

	// LastSyncedAt advances after every sync run, even when individual
	// items failed.
	LastSyncedAt time.Time
}
