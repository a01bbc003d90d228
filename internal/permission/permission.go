package permission

import "thesisrepo/internal/model"

// Package permission maps user roles to named capabilities. The mapping is a
// fixed lookup table, recomputed from the role on every check; capabilities
// are never stored alongside the user.

// Capability is a named boolean permission derived from a role.
type Capability string

const (
	CanUpload         Capability = "canUpload"
	CanEdit           Capability = "canEdit"
	CanDelete         Capability = "canDelete"
	CanApprove        Capability = "canApprove"
	CanReview         Capability = "canReview"
	CanDownload       Capability = "canDownload"
	CanManageWorkflow Capability = "canManageWorkflow"
	CanManageUsers    Capability = "canManageUsers"
	CanViewAnalytics  Capability = "canViewAnalytics"
)

// CapabilitySet is the set of capabilities a role grants.
type CapabilitySet map[Capability]bool

// Has reports whether the set grants c.
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

var roleCapabilities = map[model.Role]CapabilitySet{
	model.RoleStudent: {
		CanUpload:   true,
		CanDownload: true,
	},
	model.RoleFaculty: {
		CanReview:        true,
		CanApprove:       true,
		CanDownload:      true,
		CanViewAnalytics: true,
	},
	model.RoleLibrarian: {
		CanEdit:           true,
		CanDownload:       true,
		CanManageWorkflow: true,
		CanViewAnalytics:  true,
	},
	model.RoleAdmin: {
		CanUpload:         true,
		CanEdit:           true,
		CanDelete:         true,
		CanApprove:        true,
		CanReview:         true,
		CanDownload:       true,
		CanManageWorkflow: true,
		CanManageUsers:    true,
		CanViewAnalytics:  true,
	},
}

// Resolve returns the capability set for role. Unknown roles resolve to the
// empty set, so every check fails closed.
func Resolve(role model.Role) CapabilitySet {
	if caps, ok := roleCapabilities[role]; ok {
		return caps
	}
	return CapabilitySet{}
}

// HasCapability reports whether role grants c.
func HasCapability(role model.Role, c Capability) bool {
	return Resolve(role).Has(c)
}
