package models

import (
	"time"

	"github.com/orris-inc/subadmin/internal/shared/constants"
)

// PackageModel is the persistence model for packages.
type PackageModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"column:sid;uniqueIndex;not null;size:32"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"type:text"`
	NumOfDays   int    `gorm:"not null"`
	Price       uint64 `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PackageModel) TableName() string {
	return constants.TablePackages
}
