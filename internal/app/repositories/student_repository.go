package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// StudentRepository maps student operations onto the students endpoints
type StudentRepository struct {
	client *client.Client
}

// NewStudentRepository creates a new student repository instance
func NewStudentRepository(c *client.Client) *StudentRepository {
	return &StudentRepository{client: c}
}

// FindAll lists all students
func (r *StudentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := r.client.GetJSON(ctx, "/students", &students)
	return students, err
}

// FindByID fetches a single student
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (models.Student, error) {
	var student models.Student
	err := r.client.GetJSON(ctx, fmt.Sprintf("/students/%d", id), &student)
	return student, err
}

// Add creates a student profile
func (r *StudentRepository) Add(ctx context.Context, payload models.CreateStudent) (models.Student, error) {
	var student models.Student
	err := r.client.PostJSON(ctx, "/students/add", payload, &student)
	return student, err
}

// Edit updates a student profile
func (r *StudentRepository) Edit(ctx context.Context, id int64, payload models.CreateStudent) (models.Student, error) {
	var student models.Student
	err := r.client.PutJSON(ctx, fmt.Sprintf("/students/%d/edit", id), payload, &student)
	return student, err
}

// DeleteWithUser removes the student profile and its linked user account
func (r *StudentRepository) DeleteWithUser(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf("/students/%d/delete-with-user", id))
}

// DeleteWithoutUser removes the student profile but keeps the user account
func (r *StudentRepository) DeleteWithoutUser(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf("/students/%d/delete-without-user", id))
}

// FindExamRegistrations lists the student's exam registrations
func (r *StudentRepository) FindExamRegistrations(ctx context.Context, id int64) ([]models.StudentExamRegistration, error) {
	var registrations []models.StudentExamRegistration
	err := r.client.GetJSON(ctx, fmt.Sprintf("/students/%d/exam-registrations", id), &registrations)
	return registrations, err
}

// FindCourseEnrollments lists the student's course enrollments
func (r *StudentRepository) FindCourseEnrollments(ctx context.Context, id int64) ([]models.CourseEnrollment, error) {
	var enrollments []models.CourseEnrollment
	err := r.client.GetJSON(ctx, fmt.Sprintf("/students/%d/course-enrollments", id), &enrollments)
	return enrollments, err
}
