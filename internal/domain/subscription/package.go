package subscription

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/subadmin/internal/shared/id"
)

const (
	MaxPackageNameLength        = 100
	MaxPackageDescriptionLength = 2000
)

// Package is a purchasable offer of a number of days for a price.
// Price is in the smallest currency unit.
type Package struct {
	id          uint
	sid         string
	name        string
	description string
	numOfDays   int
	price       uint64
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPackage(name, description string, numOfDays int, price uint64) (*Package, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validateNumOfDays(numOfDays); err != nil {
		return nil, err
	}

	sid, err := id.NewPackageID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate package ID: %w", err)
	}

	now := time.Now().UTC()
	return &Package{
		sid:         sid,
		name:        name,
		description: description,
		numOfDays:   numOfDays,
		price:       price,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPackage(id uint, sid, name, description string, numOfDays int,
	price uint64, createdAt, updatedAt time.Time) (*Package, error) {

	if id == 0 {
		return nil, fmt.Errorf("package ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("package SID cannot be empty")
	}

	return &Package{
		id:          id,
		sid:         sid,
		name:        name,
		description: description,
		numOfDays:   numOfDays,
		price:       price,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPackage)
	}
	if utf8.RuneCountInString(name) > MaxPackageNameLength {
		return fmt.Errorf("%w: name too long (max %d characters)", ErrInvalidPackage, MaxPackageNameLength)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxPackageDescriptionLength {
		return fmt.Errorf("%w: description too long (max %d characters)", ErrInvalidPackage, MaxPackageDescriptionLength)
	}
	return nil
}

func validateNumOfDays(days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: num_of_days must be positive", ErrInvalidPackage)
	}
	return nil
}

func (p *Package) ID() uint {
	return p.id
}

func (p *Package) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("package ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("package ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Package) SID() string {
	return p.sid
}

func (p *Package) Name() string {
	return p.name
}

func (p *Package) Description() string {
	return p.description
}

func (p *Package) NumOfDays() int {
	return p.numOfDays
}

func (p *Package) Price() uint64 {
	return p.price
}

func (p *Package) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Package) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Package) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	p.name = name
	p.touch()
	return nil
}

func (p *Package) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	p.description = description
	p.touch()
	return nil
}

func (p *Package) UpdateNumOfDays(days int) error {
	if err := validateNumOfDays(days); err != nil {
		return err
	}
	p.numOfDays = days
	p.touch()
	return nil
}

func (p *Package) UpdatePrice(price uint64) {
	p.price = price
	p.touch()
}

func (p *Package) touch() {
	p.updatedAt = time.Now().UTC()
}
