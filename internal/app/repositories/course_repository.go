package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// CourseRepository maps course operations onto the courses endpoints.
// One method per endpoint; URL construction and payload passthrough only.
type CourseRepository struct {
	client *client.Client
}

// NewCourseRepository creates a new course repository instance
func NewCourseRepository(c *client.Client) *CourseRepository {
	return &CourseRepository{client: c}
}

// FindAll lists all courses
func (r *CourseRepository) FindAll(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.client.GetJSON(ctx, "/courses", &courses)
	return courses, err
}

// FindByID fetches a single course
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (models.Course, error) {
	var course models.Course
	err := r.client.GetJSON(ctx, fmt.Sprintf("/courses/%d", id), &course)
	return course, err
}

// Add creates a course
func (r *CourseRepository) Add(ctx context.Context, payload models.CreateCourse) (models.Course, error) {
	var course models.Course
	err := r.client.PostJSON(ctx, "/courses/add", payload, &course)
	return course, err
}

// Edit updates a course
func (r *CourseRepository) Edit(ctx context.Context, id int64, payload models.CreateCourse) (models.Course, error) {
	var course models.Course
	err := r.client.PutJSON(ctx, fmt.Sprintf("/courses/%d/edit", id), payload, &course)
	return course, err
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf("/courses/%d/delete", id))
}

// FindAllForStaff lists the courses assigned to the current staff member
func (r *CourseRepository) FindAllForStaff(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.client.GetJSON(ctx, "/courses/for-staff", &courses)
	return courses, err
}

// FindAllForStudent lists the courses the current student is enrolled in
func (r *CourseRepository) FindAllForStudent(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.client.GetJSON(ctx, "/courses/for-student", &courses)
	return courses, err
}
