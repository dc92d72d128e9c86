package collections

import (
	"context"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/repositories"
)

// CourseModes configures the error mode per course operation. The zero value
// swallows everywhere; ForStaff and ForStudent default to Propagate because
// the courses page renders a distinct failure path for them.
type CourseModes struct {
	Add        ErrorMode
	Edit       ErrorMode
	Delete     ErrorMode
	Import     ErrorMode
	ForStaff   ErrorMode
	ForStudent ErrorMode
}

// DefaultCourseModes returns the modes the console runs with
func DefaultCourseModes() CourseModes {
	return CourseModes{
		ForStaff:   Propagate,
		ForStudent: Propagate,
	}
}

// Courses is the course collection store
type Courses struct {
	*Collection[models.Course]

	courses     *repositories.CourseRepository
	enrollments *repositories.CourseEnrollmentRepository
	staff       *repositories.CourseStaffAssignmentRepository
	modes       CourseModes
}

// NewCourses creates the course store and performs the mount fetch
func NewCourses(ctx context.Context, repos *repositories.Repositories, modes CourseModes) *Courses {
	s := &Courses{
		Collection:  NewCollection("courses", repos.Course.FindAll),
		courses:     repos.Course,
		enrollments: repos.CourseEnrollment,
		staff:       repos.CourseStaffAssignment,
		modes:       modes,
	}
	s.Refresh(ctx)
	return s
}

// FindByID fetches a single course without touching collection state.
// Returns nil when the call fails.
func (s *Courses) FindByID(ctx context.Context, id int64) *models.Course {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		s.fail("findById", Swallow, err)
		return nil
	}
	return &course
}

// OnAdd creates a course and resynchronizes the collection
func (s *Courses) OnAdd(ctx context.Context, payload models.CreateCourse) error {
	return s.mutate(ctx, "add", s.modes.Add, func(ctx context.Context) error {
		_, err := s.courses.Add(ctx, payload)
		return err
	})
}

// OnEdit updates a course and resynchronizes the collection
func (s *Courses) OnEdit(ctx context.Context, id int64, payload models.CreateCourse) error {
	return s.mutate(ctx, "edit", s.modes.Edit, func(ctx context.Context) error {
		_, err := s.courses.Edit(ctx, id, payload)
		return err
	})
}

// OnDelete removes a course and resynchronizes the collection
func (s *Courses) OnDelete(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete", s.modes.Delete, func(ctx context.Context) error {
		return s.courses.Delete(ctx, id)
	})
}

// EnrolledStudents lists the students enrolled in a course. The result does
// not update the store's own items.
func (s *Courses) EnrolledStudents(ctx context.Context, id int64) []models.CourseEnrollment {
	enrollments, err := s.enrollments.GetEnrolledStudents(ctx, id)
	if err != nil {
		s.fail("enrolledStudents", Swallow, err)
		return nil
	}
	return enrollments
}

// AssignedStaff lists the staff assigned to a course
func (s *Courses) AssignedStaff(ctx context.Context, id int64) []models.CourseStaffAssignment {
	assignments, err := s.staff.GetCourseAssignedStaff(ctx, id)
	if err != nil {
		s.fail("assignedStaff", Swallow, err)
		return nil
	}
	return assignments
}

// ExportEnrolledStudentsCSV downloads the enrolled-students roster blob for
// the caller to save. Returns nil when the call fails.
func (s *Courses) ExportEnrolledStudentsCSV(ctx context.Context, id int64) []byte {
	blob, err := s.enrollments.ExportEnrolledStudentsCSV(ctx, id)
	if err != nil {
		s.fail("exportEnrolledStudentsCsv", Swallow, err)
		return nil
	}
	return blob
}

// ImportEnrolledStudentsCSV uploads a roster CSV and resynchronizes
func (s *Courses) ImportEnrolledStudentsCSV(ctx context.Context, id int64, filename string, data []byte) error {
	return s.mutate(ctx, "importEnrolledStudentsCsv", s.modes.Import, func(ctx context.Context) error {
		return s.enrollments.ImportEnrolledStudentsCSV(ctx, id, filename, data)
	})
}

// ForStaff lists the courses assigned to the current staff member. The
// result is returned to the caller, not stored.
func (s *Courses) ForStaff(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.FindAllForStaff(ctx)
	if err != nil {
		return nil, s.fail("findAllForStaff", s.modes.ForStaff, err)
	}
	return courses, nil
}

// ForStudent lists the courses the current student is enrolled in
func (s *Courses) ForStudent(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.FindAllForStudent(ctx)
	if err != nil {
		return nil, s.fail("findAllForStudent", s.modes.ForStudent, err)
	}
	return courses, nil
}
