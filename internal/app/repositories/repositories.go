package repositories

import (
	"github.com/finki-emc/aas-client/internal/app/client"
)

// Repositories bundles every resource repository over one shared HTTP adapter
type Repositories struct {
	Course                  *CourseRepository
	Exam                    *ExamRepository
	Student                 *StudentRepository
	User                    *UserRepository
	CourseEnrollment        *CourseEnrollmentRepository
	StudentExamRegistration *StudentExamRegistrationRepository
	CourseStaffAssignment   *CourseStaffAssignmentRepository
}

// NewRepositories creates all repositories around the given client
func NewRepositories(c *client.Client) *Repositories {
	return &Repositories{
		Course:                  NewCourseRepository(c),
		Exam:                    NewExamRepository(c),
		Student:                 NewStudentRepository(c),
		User:                    NewUserRepository(c),
		CourseEnrollment:        NewCourseEnrollmentRepository(c),
		StudentExamRegistration: NewStudentExamRegistrationRepository(c),
		CourseStaffAssignment:   NewCourseStaffAssignmentRepository(c),
	}
}
