package access

import (
	"sort"
	"testing"

	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// sorted renders a capability set for comparison
func sorted(set CapabilitySet) []Capability {
	out := make([]Capability, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equal(a, b []Capability) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCoursesPageVisibility(t *testing.T) {
	tests := []struct {
		role enums.UserRole
		want []Capability
	}{
		{enums.RoleAdministrator, []Capability{Create, Delete, Edit, Export, Import, SeeAll}},
		{enums.RoleStaff, []Capability{Create, Delete, Edit, Export, Import, SeeAll, SeeMine}},
		{enums.RoleStudent, []Capability{SeeAll, SeeMine}},
		{enums.RoleUser, []Capability{SeeAll}},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			got := sorted(For(PageCourses, tc.role))
			if !equal(got, tc.want) {
				t.Errorf("For(courses, %s) = %v, want %v", tc.role, got, tc.want)
			}
		})
	}
}

func TestExamsPageVisibility(t *testing.T) {
	tests := []struct {
		role enums.UserRole
		want []Capability
	}{
		{enums.RoleAdministrator, []Capability{Create, Delete, Edit, Export, Import, SeeAll}},
		{enums.RoleStaff, []Capability{Create, Delete, Edit, Export, Import, SeeAll}},
		{enums.RoleStudent, []Capability{Register, SeeAll, SeeMine}},
		{enums.RoleUser, []Capability{SeeAll}},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			got := sorted(For(PageExams, tc.role))
			if !equal(got, tc.want) {
				t.Errorf("For(exams, %s) = %v, want %v", tc.role, got, tc.want)
			}
		})
	}
}

func TestStudentsPageStaffOnly(t *testing.T) {
	for _, role := range []enums.UserRole{enums.RoleAdministrator, enums.RoleStaff} {
		set := For(PageStudents, role)
		for _, c := range []Capability{SeeAll, Create, Edit, Delete} {
			if !set.Has(c) {
				t.Errorf("For(students, %s) is missing %s", role, c)
			}
		}
	}

	for _, role := range []enums.UserRole{enums.RoleStudent, enums.RoleUser} {
		if set := For(PageStudents, role); len(set) != 0 {
			t.Errorf("For(students, %s) = %v, want empty", role, sorted(set))
		}
	}
}

func TestUsersPageAdministratorOnly(t *testing.T) {
	admin := For(PageUsers, enums.RoleAdministrator)
	for _, c := range []Capability{SeeAll, Create, Edit, Delete, Import, Export} {
		if !admin.Has(c) {
			t.Errorf("administrator is missing %s on the users page", c)
		}
	}

	for _, role := range []enums.UserRole{enums.RoleStaff, enums.RoleStudent, enums.RoleUser} {
		if set := For(PageUsers, role); len(set) != 0 {
			t.Errorf("For(users, %s) = %v, want empty", role, sorted(set))
		}
	}
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	for _, page := range []Page{PageCourses, PageExams, PageStudents, PageUsers} {
		if set := For(page, Unknown); len(set) != 0 {
			t.Errorf("For(%s, unknown role) = %v, want empty", page, sorted(set))
		}
	}
}

func TestHasOnMissingCapability(t *testing.T) {
	set := For(PageCourses, enums.RoleUser)
	if set.Has(Delete) {
		t.Error("USER role reports delete capability on courses")
	}
}
