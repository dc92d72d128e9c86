package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// CourseStaffAssignmentRepository maps staff assignment reads onto the course endpoints
type CourseStaffAssignmentRepository struct {
	client *client.Client
}

// NewCourseStaffAssignmentRepository creates a new staff assignment repository instance
func NewCourseStaffAssignmentRepository(c *client.Client) *CourseStaffAssignmentRepository {
	return &CourseStaffAssignmentRepository{client: c}
}

// GetCourseAssignedStaff lists the staff assigned to a course
func (r *CourseStaffAssignmentRepository) GetCourseAssignedStaff(ctx context.Context, courseID int64) ([]models.CourseStaffAssignment, error) {
	var assignments []models.CourseStaffAssignment
	err := r.client.GetJSON(ctx, fmt.Sprintf("/courses/%d/assigned-staff", courseID), &assignments)
	return assignments, err
}
