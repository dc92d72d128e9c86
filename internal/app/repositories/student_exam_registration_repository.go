package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// StudentExamRegistrationRepository maps registration and attendance reads
// and CSV transfer onto the exam endpoints
type StudentExamRegistrationRepository struct {
	client *client.Client
}

// NewStudentExamRegistrationRepository creates a new registration repository instance
func NewStudentExamRegistrationRepository(c *client.Client) *StudentExamRegistrationRepository {
	return &StudentExamRegistrationRepository{client: c}
}

// RegisterForExam adds the current student to the exam's registrant set
func (r *StudentExamRegistrationRepository) RegisterForExam(ctx context.Context, examID int64) error {
	return r.client.PostJSON(ctx, fmt.Sprintf("/exams/%d/register", examID), nil, nil)
}

// GetRegisteredStudents lists registrations for an exam
func (r *StudentExamRegistrationRepository) GetRegisteredStudents(ctx context.Context, examID int64) ([]models.StudentExamRegistration, error) {
	var registrations []models.StudentExamRegistration
	err := r.client.GetJSON(ctx, fmt.Sprintf("/exams/%d/registered-students", examID), &registrations)
	return registrations, err
}

// GetAttendedStudents lists registrations marked attended
func (r *StudentExamRegistrationRepository) GetAttendedStudents(ctx context.Context, examID int64) ([]models.StudentExamRegistration, error) {
	var registrations []models.StudentExamRegistration
	err := r.client.GetJSON(ctx, fmt.Sprintf("/exams/%d/attended-students", examID), &registrations)
	return registrations, err
}

// GetAbsentStudents lists registrations marked absent
func (r *StudentExamRegistrationRepository) GetAbsentStudents(ctx context.Context, examID int64) ([]models.StudentExamRegistration, error) {
	var registrations []models.StudentExamRegistration
	err := r.client.GetJSON(ctx, fmt.Sprintf("/exams/%d/absent-students", examID), &registrations)
	return registrations, err
}

// ExportRegisteredStudents downloads the registered-students CSV blob
func (r *StudentExamRegistrationRepository) ExportRegisteredStudents(ctx context.Context, examID int64) ([]byte, error) {
	return r.client.GetBlob(ctx, fmt.Sprintf("/exams/%d/registered-students/export", examID))
}

// ExportAttendedStudents downloads the attended-students CSV blob
func (r *StudentExamRegistrationRepository) ExportAttendedStudents(ctx context.Context, examID int64) ([]byte, error) {
	return r.client.GetBlob(ctx, fmt.Sprintf("/exams/%d/attended-students/export", examID))
}

// ExportAbsentStudents downloads the absent-students CSV blob
func (r *StudentExamRegistrationRepository) ExportAbsentStudents(ctx context.Context, examID int64) ([]byte, error) {
	return r.client.GetBlob(ctx, fmt.Sprintf("/exams/%d/absent-students/export", examID))
}

// ImportAttendedStudents uploads an attendance CSV for the exam
func (r *StudentExamRegistrationRepository) ImportAttendedStudents(ctx context.Context, examID int64, filename string, data []byte) error {
	return r.client.PostMultipart(ctx, fmt.Sprintf("/exams/%d/attended-students/import", examID), "file", filename, data, nil)
}
