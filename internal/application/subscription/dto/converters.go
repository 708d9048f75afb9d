package dto

import (
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
)

// ToPackageDTO converts a package; descriptionHTML is the rendered description.
func ToPackageDTO(pkg *subscription.Package, descriptionHTML string) *PackageDTO {
	if pkg == nil {
		return nil
	}

	return &PackageDTO{
		ID:              pkg.SID(),
		Name:            pkg.Name(),
		Description:     pkg.Description(),
		DescriptionHTML: descriptionHTML,
		NumOfDays:       pkg.NumOfDays(),
		Price:           pkg.Price(),
		CreatedAt:       pkg.CreatedAt(),
		UpdatedAt:       pkg.UpdatedAt(),
	}
}

// ToPurchaseDTO converts a purchase. proofURL replaces the stored file name,
// u may be nil when the user no longer exists.
func ToPurchaseDTO(p *subscription.Purchase, u *user.User, proofURL string) *PurchaseDTO {
	if p == nil {
		return nil
	}

	result := &PurchaseDTO{
		ID:          p.SID(),
		Status:      p.Status().String(),
		PackageName: p.PackageName(),
		NumOfDays:   p.NumOfDays(),
		Price:       p.Price(),
		Transition:  proofURL,
		ReviewedAt:  p.ReviewedAt(),
		CreatedAt:   p.CreatedAt(),
	}

	if p.PackageID() != nil {
		if sid, ok := p.Metadata()["package_sid"].(string); ok {
			result.PackageID = &sid
		}
	}

	if u != nil {
		result.User = &PurchaseUserDTO{
			ID:    u.SID(),
			Name:  u.Name(),
			Email: u.Email(),
			Phone: u.Phone(),
		}
	}

	return result
}
