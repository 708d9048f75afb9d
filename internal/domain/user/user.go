package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/subadmin/internal/shared/id"
)

const day = 24 * time.Hour

// User is the subscriber. Only validUntil is owned by this service.
type User struct {
	id         uint
	sid        string
	name       string
	email      string
	phone      string
	validUntil *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewUser(name, email, phone string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}

	sid, err := id.NewUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := time.Now().UTC()
	return &User{
		sid:       sid,
		name:      strings.TrimSpace(name),
		email:     email,
		phone:     strings.TrimSpace(phone),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(id uint, sid, name, email, phone string, validUntil *time.Time,
	createdAt, updatedAt time.Time) (*User, error) {

	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}

	return &User{
		id:         id,
		sid:        sid,
		name:       name,
		email:      email,
		phone:      phone,
		validUntil: validUntil,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) SID() string {
	return u.sid
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Phone() string {
	return u.phone
}

// ValidUntil is nil for a user who never had an approved purchase.
func (u *User) ValidUntil() *time.Time {
	return u.validUntil
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// IsSubscriptionActive reports whether validUntil lies after now.
func (u *User) IsSubscriptionActive(now time.Time) bool {
	return u.validUntil != nil && u.validUntil.After(now)
}

// ExtendValidity adds days to whichever is later of now and the current
// validUntil, and returns the new value. It never moves validUntil back.
func (u *User) ExtendValidity(days int, now time.Time) (time.Time, error) {
	if days <= 0 {
		return time.Time{}, fmt.Errorf("extension days must be positive, got %d", days)
	}

	base := now.UTC()
	if u.validUntil != nil && u.validUntil.After(base) {
		base = u.validUntil.UTC()
	}

	extended := base.Add(time.Duration(days) * day)
	u.validUntil = &extended
	u.updatedAt = now.UTC()
	return extended, nil
}
