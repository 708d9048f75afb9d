package migration

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// SeedFile is the YAML layout accepted by `migrate seed`.
type SeedFile struct {
	Packages []SeedPackage `yaml:"packages"`
	Users    []SeedUser    `yaml:"users"`
}

type SeedPackage struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	NumOfDays   int    `yaml:"num_of_days"`
	Price       uint64 `yaml:"price"`
}

type SeedUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
	// ValidDays, when positive, starts the user with an active subscription.
	ValidDays int `yaml:"valid_days"`
}

type SeedResult struct {
	PackagesCreated int
	PackagesSkipped int
	UsersCreated    int
	UsersSkipped    int
}

// Seeder loads fixture data. Packages are matched by name and users by
// email, so running the same file twice creates nothing new.
type Seeder struct {
	packageRepo subscription.PackageRepository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewSeeder(packageRepo subscription.PackageRepository, userRepo user.Repository, logger logger.Interface) *Seeder {
	return &Seeder{
		packageRepo: packageRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

func (s *Seeder) Seed(ctx context.Context, seed *SeedFile) (*SeedResult, error) {
	result := &SeedResult{}

	existing, err := s.packageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, pkg := range existing {
		names[pkg.Name()] = true
	}

	for _, sp := range seed.Packages {
		if names[sp.Name] {
			result.PackagesSkipped++
			continue
		}
		pkg, err := subscription.NewPackage(sp.Name, sp.Description, sp.NumOfDays, sp.Price)
		if err != nil {
			return result, fmt.Errorf("invalid seed package %q: %w", sp.Name, err)
		}
		if err := s.packageRepo.Create(ctx, pkg); err != nil {
			return result, fmt.Errorf("failed to create package %q: %w", sp.Name, err)
		}
		names[sp.Name] = true
		result.PackagesCreated++
	}

	now := time.Now().UTC()
	for _, su := range seed.Users {
		found, err := s.userRepo.GetByEmail(ctx, su.Email)
		if err != nil {
			return result, fmt.Errorf("failed to look up user %q: %w", su.Email, err)
		}
		if found != nil {
			result.UsersSkipped++
			continue
		}

		u, err := user.NewUser(su.Name, su.Email, su.Phone)
		if err != nil {
			return result, fmt.Errorf("invalid seed user %q: %w", su.Email, err)
		}
		if su.ValidDays > 0 {
			if _, err := u.ExtendValidity(su.ValidDays, now); err != nil {
				return result, fmt.Errorf("invalid seed user %q: %w", su.Email, err)
			}
		}
		if err := s.userRepo.Create(ctx, u); err != nil {
			return result, fmt.Errorf("failed to create user %q: %w", su.Email, err)
		}
		result.UsersCreated++
	}

	s.logger.Infow("seed completed",
		"packages_created", result.PackagesCreated,
		"packages_skipped", result.PackagesSkipped,
		"users_created", result.UsersCreated,
		"users_skipped", result.UsersSkipped,
	)

	return result, nil
}
