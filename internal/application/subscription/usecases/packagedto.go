package usecases

import (
	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// renderPackage converts pkg, rendering its description when a renderer is set.
// A rendering failure only drops description_html.
func renderPackage(renderer DescriptionRenderer, log logger.Interface, pkg *subscription.Package) *dto.PackageDTO {
	var html string
	if renderer != nil {
		rendered, err := renderer.ToHTMLSanitized(pkg.Description())
		if err != nil {
			log.Warnw("failed to render package description", "package_sid", pkg.SID(), "error", err)
		} else {
			html = rendered
		}
	}
	return dto.ToPackageDTO(pkg, html)
}
