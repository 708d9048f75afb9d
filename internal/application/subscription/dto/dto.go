package dto

import "time"

type PackageDTO struct {
	ID              string    `json:"id" example:"pkg_xK9mP2vL3nQa"`
	Name            string    `json:"name" example:"Monthly"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	NumOfDays       int       `json:"num_of_days" example:"30"`
	Price           uint64    `json:"price" example:"1000"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PurchaseUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PurchaseDTO struct {
	ID          string           `json:"id" example:"pur_xK9mP2vL3nQa"`
	Status      string           `json:"status" example:"PENDING"`
	PackageID   *string          `json:"package_id"`
	PackageName string           `json:"package_name"`
	NumOfDays   int              `json:"num_of_days"`
	Price       uint64           `json:"price"`
	Transition  string           `json:"transition"`
	User        *PurchaseUserDTO `json:"user,omitempty"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
