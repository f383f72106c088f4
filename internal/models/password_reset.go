package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrResetTokenExpired = errors.New("this password reset link has expired, please request a new one")
	ErrResetTokenUsed    = errors.New("this password reset link has already been used")
)

// PasswordResetToken is a single use token for the password reset email flow.
type PasswordResetToken struct {
	DefaultModel
	User      User      `json:"-"`
	UserID    uuid.UUID `gorm:"index"`
	Token     string    `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	UsedAt    *time.Time
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	if t.Token == "" {
		t.Token = NewToken()
	}

	return nil
}

// Consume marks the token as used. It fails when the token has expired or
// was already consumed; the conditional UPDATE makes a racing second use lose.
func (t *PasswordResetToken) Consume(db *gorm.DB) error {
	if time.Now().In(time.UTC).After(t.ExpiresAt) {
		return ErrResetTokenExpired
	}

	now := time.Now().In(time.UTC)
	res := db.Model(&PasswordResetToken{}).
		Where("id = ? AND used_at IS NULL", t.ID).
		Update("used_at", &now)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrResetTokenUsed
	}

	t.UsedAt = &now
	return nil
}
