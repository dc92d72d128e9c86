package collections

import (
	"context"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/repositories"
)

// StudentModes configures the error mode per student operation
type StudentModes struct {
	Add    ErrorMode
	Edit   ErrorMode
	Delete ErrorMode
}

// Students is the student collection store
type Students struct {
	*Collection[models.Student]

	students *repositories.StudentRepository
	modes    StudentModes
}

// NewStudents creates the student store and performs the mount fetch
func NewStudents(ctx context.Context, repos *repositories.Repositories, modes StudentModes) *Students {
	s := &Students{
		Collection: NewCollection("students", repos.Student.FindAll),
		students:   repos.Student,
		modes:      modes,
	}
	s.Refresh(ctx)
	return s
}

// FindByID fetches a single student without touching collection state
func (s *Students) FindByID(ctx context.Context, id int64) *models.Student {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		s.fail("findById", Swallow, err)
		return nil
	}
	return &student
}

// OnAdd creates a student profile and resynchronizes the collection.
// The created row is returned so orchestration can link it further.
func (s *Students) OnAdd(ctx context.Context, payload models.CreateStudent) (*models.Student, error) {
	student, err := s.students.Add(ctx, payload)
	if err != nil {
		return nil, s.fail("add", s.modes.Add, err)
	}
	s.Refresh(ctx)
	return &student, nil
}

// OnEdit updates a student profile and resynchronizes the collection
func (s *Students) OnEdit(ctx context.Context, id int64, payload models.CreateStudent) error {
	return s.mutate(ctx, "edit", s.modes.Edit, func(ctx context.Context) error {
		_, err := s.students.Edit(ctx, id, payload)
		return err
	})
}

// OnDeleteWithUser removes the student profile and its linked user account
func (s *Students) OnDeleteWithUser(ctx context.Context, id int64) error {
	return s.mutate(ctx, "deleteWithUser", s.modes.Delete, func(ctx context.Context) error {
		return s.students.DeleteWithUser(ctx, id)
	})
}

// OnDeleteWithoutUser removes the student profile but keeps the user account
func (s *Students) OnDeleteWithoutUser(ctx context.Context, id int64) error {
	return s.mutate(ctx, "deleteWithoutUser", s.modes.Delete, func(ctx context.Context) error {
		return s.students.DeleteWithoutUser(ctx, id)
	})
}

// ExamRegistrations lists the student's exam registrations
func (s *Students) ExamRegistrations(ctx context.Context, id int64) []models.StudentExamRegistration {
	registrations, err := s.students.FindExamRegistrations(ctx, id)
	if err != nil {
		s.fail("examRegistrations", Swallow, err)
		return nil
	}
	return registrations
}

// CourseEnrollments lists the student's course enrollments
func (s *Students) CourseEnrollments(ctx context.Context, id int64) []models.CourseEnrollment {
	enrollments, err := s.students.FindCourseEnrollments(ctx, id)
	if err != nil {
		s.fail("courseEnrollments", Swallow, err)
		return nil
	}
	return enrollments
}
