package dto

import (
	"time"

	"github.com/orris-inc/subadmin/internal/domain/user"
)

type UserDTO struct {
	ID                 string     `json:"id" example:"usr_xK9mP2vL3nQa"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	ValidUntil         *time.Time `json:"valid_until"`
	SubscriptionActive bool       `json:"subscription_active"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToUserDTO(u *user.User, now time.Time) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                 u.SID(),
		Name:               u.Name(),
		Email:              u.Email(),
		Phone:              u.Phone(),
		ValidUntil:         u.ValidUntil(),
		SubscriptionActive: u.IsSubscriptionActive(now),
		CreatedAt:          u.CreatedAt(),
	}
}
