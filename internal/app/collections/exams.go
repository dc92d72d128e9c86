package collections

import (
	"context"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/repositories"
)

// ExamModes configures the error mode per exam operation
type ExamModes struct {
	Add      ErrorMode
	Edit     ErrorMode
	Delete   ErrorMode
	Register ErrorMode
	Import   ErrorMode
}

// Exams is the exam collection store
type Exams struct {
	*Collection[models.Exam]

	exams         *repositories.ExamRepository
	registrations *repositories.StudentExamRegistrationRepository
	modes         ExamModes
}

// NewExams creates the exam store and performs the mount fetch
func NewExams(ctx context.Context, repos *repositories.Repositories, modes ExamModes) *Exams {
	s := &Exams{
		Collection:    NewCollection("exams", repos.Exam.FindAll),
		exams:         repos.Exam,
		registrations: repos.StudentExamRegistration,
		modes:         modes,
	}
	s.Refresh(ctx)
	return s
}

// FindByID fetches a single exam without touching collection state
func (s *Exams) FindByID(ctx context.Context, id int64) *models.Exam {
	exam, err := s.exams.FindByID(ctx, id)
	if err != nil {
		s.fail("findById", Swallow, err)
		return nil
	}
	return &exam
}

// OnAdd creates an exam and resynchronizes the collection
func (s *Exams) OnAdd(ctx context.Context, payload models.CreateExam) error {
	return s.mutate(ctx, "add", s.modes.Add, func(ctx context.Context) error {
		_, err := s.exams.Add(ctx, payload)
		return err
	})
}

// OnEdit updates an exam and resynchronizes the collection
func (s *Exams) OnEdit(ctx context.Context, id int64, payload models.CreateExam) error {
	return s.mutate(ctx, "edit", s.modes.Edit, func(ctx context.Context) error {
		_, err := s.exams.Edit(ctx, id, payload)
		return err
	})
}

// OnDelete removes an exam and resynchronizes the collection
func (s *Exams) OnDelete(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete", s.modes.Delete, func(ctx context.Context) error {
		return s.exams.Delete(ctx, id)
	})
}

// Register adds the current student to the exam's registrant set. The
// registrant set is not modeled locally; it is observed via the list reads.
func (s *Exams) Register(ctx context.Context, id int64) error {
	return s.mutate(ctx, "register", s.modes.Register, func(ctx context.Context) error {
		return s.registrations.RegisterForExam(ctx, id)
	})
}

// RegisteredStudents lists registrations for an exam
func (s *Exams) RegisteredStudents(ctx context.Context, id int64) []models.StudentExamRegistration {
	registrations, err := s.registrations.GetRegisteredStudents(ctx, id)
	if err != nil {
		s.fail("registeredStudents", Swallow, err)
		return nil
	}
	return registrations
}

// AttendedStudents lists registrations marked attended
func (s *Exams) AttendedStudents(ctx context.Context, id int64) []models.StudentExamRegistration {
	registrations, err := s.registrations.GetAttendedStudents(ctx, id)
	if err != nil {
		s.fail("attendedStudents", Swallow, err)
		return nil
	}
	return registrations
}

// AbsentStudents lists registrations marked absent
func (s *Exams) AbsentStudents(ctx context.Context, id int64) []models.StudentExamRegistration {
	registrations, err := s.registrations.GetAbsentStudents(ctx, id)
	if err != nil {
		s.fail("absentStudents", Swallow, err)
		return nil
	}
	return registrations
}

// ExportRegisteredStudentsCSV downloads the registered-students blob
func (s *Exams) ExportRegisteredStudentsCSV(ctx context.Context, id int64) []byte {
	blob, err := s.registrations.ExportRegisteredStudents(ctx, id)
	if err != nil {
		s.fail("exportRegisteredStudents", Swallow, err)
		return nil
	}
	return blob
}

// ExportAttendedStudentsCSV downloads the attended-students blob
func (s *Exams) ExportAttendedStudentsCSV(ctx context.Context, id int64) []byte {
	blob, err := s.registrations.ExportAttendedStudents(ctx, id)
	if err != nil {
		s.fail("exportAttendedStudents", Swallow, err)
		return nil
	}
	return blob
}

// ExportAbsentStudentsCSV downloads the absent-students blob
func (s *Exams) ExportAbsentStudentsCSV(ctx context.Context, id int64) []byte {
	blob, err := s.registrations.ExportAbsentStudents(ctx, id)
	if err != nil {
		s.fail("exportAbsentStudents", Swallow, err)
		return nil
	}
	return blob
}

// ImportAttendedStudentsCSV uploads an attendance CSV and resynchronizes
func (s *Exams) ImportAttendedStudentsCSV(ctx context.Context, id int64, filename string, data []byte) error {
	return s.mutate(ctx, "importAttendedStudents", s.modes.Import, func(ctx context.Context) error {
		return s.registrations.ImportAttendedStudents(ctx, id, filename, data)
	})
}
