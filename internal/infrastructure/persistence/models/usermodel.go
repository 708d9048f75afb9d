package models

import (
	"time"

	"github.com/orris-inc/subadmin/internal/shared/constants"
)

// UserModel maps the subset of the users table this service reads, plus
// valid_until which it owns.
type UserModel struct {
	ID         uint       `gorm:"primarykey"`
	SID        string     `gorm:"column:sid;uniqueIndex;not null;size:32"`
	Name       string     `gorm:"size:100"`
	Email      string     `gorm:"uniqueIndex;not null;size:255"`
	Phone      string     `gorm:"size:32"`
	ValidUntil *time.Time `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
