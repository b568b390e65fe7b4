package constants

import "fmt"

const (
	RoleSales = "sales"
	RoleCMO   = "cmo"
	RoleCMH   = "cmh"
	RoleAdmin = "admin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyReviewersCanAcces = "Hanya CMO, CMH, atau admin yang boleh mengakses fitur %s."
	ErrOnlyIntakeCanAccess   = "Hanya sales atau admin yang boleh mengakses fitur %s."
	ErrOnlyHeadCanAccess     = "Hanya CMH atau admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAcces, feature)
}

func RoleErrorIntake(feature string) string {
	return fmt.Sprintf(ErrOnlyIntakeCanAccess, feature)
}

func RoleErrorHead(feature string) string {
	return fmt.Sprintf(ErrOnlyHeadCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSales,
		RoleCMO,
		RoleCMH,
		RoleAdmin,
	}

	IntakeRoles = []string{
		RoleSales,
		RoleAdmin,
	}

	ReviewerRoles = []string{
		RoleCMO,
		RoleCMH,
		RoleAdmin,
	}

	HeadAndAdmin = []string{
		RoleCMH,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
