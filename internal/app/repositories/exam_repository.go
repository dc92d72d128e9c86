package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// ExamRepository maps exam operations onto the exams endpoints
type ExamRepository struct {
	client *client.Client
}

// NewExamRepository creates a new exam repository instance
func NewExamRepository(c *client.Client) *ExamRepository {
	return &ExamRepository{client: c}
}

// FindAll lists all exams
func (r *ExamRepository) FindAll(ctx context.Context) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.client.GetJSON(ctx, "/exams", &exams)
	return exams, err
}

// FindByID fetches a single exam
func (r *ExamRepository) FindByID(ctx context.Context, id int64) (models.Exam, error) {
	var exam models.Exam
	err := r.client.GetJSON(ctx, fmt.Sprintf("/exams/%d", id), &exam)
	return exam, err
}

// Add creates an exam
func (r *ExamRepository) Add(ctx context.Context, payload models.CreateExam) (models.Exam, error) {
	var exam models.Exam
	err := r.client.PostJSON(ctx, "/exams/add", payload, &exam)
	return exam, err
}

// Edit updates an exam
func (r *ExamRepository) Edit(ctx context.Context, id int64, payload models.CreateExam) (models.Exam, error) {
	var exam models.Exam
	err := r.client.PutJSON(ctx, fmt.Sprintf("/exams/%d/edit", id), payload, &exam)
	return exam, err
}

// Delete removes an exam
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf("/exams/%d/delete", id))
}

// Register registers the current student for the exam
func (r *ExamRepository) Register(ctx context.Context, id int64) error {
	return r.client.PostJSON(ctx, fmt.Sprintf("/exams/%d/register", id), nil, nil)
}
