package enums

// UserRole defines the user role type
type UserRole string

const (
	RoleAdministrator UserRole = "ADMINISTRATOR"
	RoleStaff         UserRole = "STAFF"
	RoleStudent       UserRole = "STUDENT"
	// RoleUser is the default role of a freshly registered account
	RoleUser UserRole = "USER"
)

// Valid reports whether the role is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdministrator, RoleStaff, RoleStudent, RoleUser:
		return true
	}
	return false
}

// StaffRole defines the role of a staff member on a course
type StaffRole string

const (
	StaffProfessor StaffRole = "PROFESSOR"
	StaffAssistant StaffRole = "ASSISTANT"
)

// ExamStatus represents a student's standing on an exam registration
type ExamStatus string

const (
	ExamRegistered ExamStatus = "REGISTERED"
	ExamAttended   ExamStatus = "ATTENDED"
	ExamAbsent     ExamStatus = "ABSENT"
)
