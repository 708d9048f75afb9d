package user

import (
	"context"
	"time"
)

// Repository returns (nil, nil) when a user does not exist.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIDs returns the users found, keyed by ID.
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	UpdateValidUntil(ctx context.Context, user *User) error
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type ListFilter struct {
	Page     int
	PageSize int
}
