package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// CourseEnrollmentRepository maps enrollment reads and roster CSV transfer
// onto the course endpoints
type CourseEnrollmentRepository struct {
	client *client.Client
}

// NewCourseEnrollmentRepository creates a new course enrollment repository instance
func NewCourseEnrollmentRepository(c *client.Client) *CourseEnrollmentRepository {
	return &CourseEnrollmentRepository{client: c}
}

// GetEnrolledStudents lists the students enrolled in a course
func (r *CourseEnrollmentRepository) GetEnrolledStudents(ctx context.Context, courseID int64) ([]models.CourseEnrollment, error) {
	var enrollments []models.CourseEnrollment
	err := r.client.GetJSON(ctx, fmt.Sprintf("/courses/%d/enrolled-students", courseID), &enrollments)
	return enrollments, err
}

// ExportEnrolledStudentsCSV downloads the enrolled-students roster as a CSV blob
func (r *CourseEnrollmentRepository) ExportEnrolledStudentsCSV(ctx context.Context, courseID int64) ([]byte, error) {
	return r.client.GetBlob(ctx, fmt.Sprintf("/courses/%d/export", courseID))
}

// ImportEnrolledStudentsCSV uploads an enrolled-students roster CSV
func (r *CourseEnrollmentRepository) ImportEnrolledStudentsCSV(ctx context.Context, courseID int64, filename string, data []byte) error {
	return r.client.PostMultipart(ctx, fmt.Sprintf("/courses/%d/import", courseID), "file", filename, data, nil)
}
