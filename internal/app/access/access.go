// Package access maps user roles to the action controls visible on each
// page. It is presentation gating only; the backend enforces authorization.
package access

import (
	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// Capability is one visible action control
type Capability string

const (
	SeeAll   Capability = "see-all"
	SeeMine  Capability = "see-mine"
	Create   Capability = "create"
	Edit     Capability = "edit"
	Delete   Capability = "delete"
	Import   Capability = "import"
	Export   Capability = "export"
	Register Capability = "register"
)

// Page identifies one console page
type Page string

const (
	PageCourses  Page = "courses"
	PageExams    Page = "exams"
	PageStudents Page = "students"
	PageUsers    Page = "users"
)

// Unknown is the role used while the "who am I" call is still pending. It
// carries no capabilities, so pages render a neutral loading state instead
// of assuming the lowest or highest privilege.
const Unknown enums.UserRole = ""

// CapabilitySet is the set of controls visible for one page and role
type CapabilitySet map[Capability]bool

// Has reports whether the capability is visible
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// capabilityTable is evaluated per render from a freshly fetched current
// user; roles are never cached across navigations.
var capabilityTable = map[Page]map[enums.UserRole][]Capability{
	PageCourses: {
		enums.RoleAdministrator: {SeeAll, Create, Edit, Delete, Import, Export},
		enums.RoleStaff:         {SeeAll, SeeMine, Create, Edit, Delete, Import, Export},
		enums.RoleStudent:       {SeeAll, SeeMine},
		enums.RoleUser:          {SeeAll},
	},
	PageExams: {
		enums.RoleAdministrator: {SeeAll, Create, Edit, Delete, Import, Export},
		enums.RoleStaff:         {SeeAll, Create, Edit, Delete, Import, Export},
		enums.RoleStudent:       {SeeAll, SeeMine, Register},
		enums.RoleUser:          {SeeAll},
	},
	PageStudents: {
		enums.RoleAdministrator: {SeeAll, Create, Edit, Delete},
		enums.RoleStaff:         {SeeAll, Create, Edit, Delete},
	},
	PageUsers: {
		enums.RoleAdministrator: {SeeAll, Create, Edit, Delete, Import, Export},
	},
}

// For returns the capability set for the given page and role. An unknown
// role, Unknown included, gets an empty set.
func For(page Page, role enums.UserRole) CapabilitySet {
	set := CapabilitySet{}
	for _, c := range capabilityTable[page][role] {
		set[c] = true
	}
	return set
}
