package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/shared/constants"
)

// PurchaseModel is the persistence model for purchases. PackageName,
// NumOfDays and Price are a snapshot and never follow the package row.
type PurchaseModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"column:sid;uniqueIndex;not null;size:32"`
	UserID      uint   `gorm:"not null;index"`
	PackageID   *uint  `gorm:"index"`
	PackageName string `gorm:"not null;size:100"`
	NumOfDays   int    `gorm:"not null"`
	Price       uint64 `gorm:"not null;default:0"`
	Status      string `gorm:"not null;size:20;index;default:PENDING"`
	Transition  string `gorm:"not null;size:255"`
	Metadata    datatypes.JSON
	ReviewedAt  *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

func (PurchaseModel) TableName() string {
	return constants.TablePurchases
}

func (p *PurchaseModel) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = string(vo.PurchaseStatusPending)
	}
	return nil
}
