package repositories

import (
	"context"
	"fmt"

	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// UserRepository maps user operations onto the users endpoints
type UserRepository struct {
	client *client.Client
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(c *client.Client) *UserRepository {
	return &UserRepository{client: c}
}

// FindAll lists all users
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.client.GetJSON(ctx, "/users", &users)
	return users, err
}

// FindByID fetches a single user
func (r *UserRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := r.client.GetJSON(ctx, fmt.Sprintf("/users/%d", id), &user)
	return user, err
}

// Add creates a user
func (r *UserRepository) Add(ctx context.Context, payload models.CreateUser) (models.User, error) {
	var user models.User
	err := r.client.PostJSON(ctx, "/users/add", payload, &user)
	return user, err
}

// Edit updates a user
func (r *UserRepository) Edit(ctx context.Context, id int64, payload models.CreateUser) (models.User, error) {
	var user models.User
	err := r.client.PutJSON(ctx, fmt.Sprintf("/users/%d/edit", id), payload, &user)
	return user, err
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf("/users/%d/delete", id))
}

// Me fetches the profile of the logged-in user
func (r *UserRepository) Me(ctx context.Context) (models.MyProfile, error) {
	var profile models.MyProfile
	err := r.client.GetJSON(ctx, "/users/me", &profile)
	return profile, err
}

// Register self-registers a new account
func (r *UserRepository) Register(ctx context.Context, payload models.RegisterUser) (models.User, error) {
	var user models.User
	err := r.client.PostJSON(ctx, "/users/register", payload, &user)
	return user, err
}

// Login authenticates and returns the issued token
func (r *UserRepository) Login(ctx context.Context, payload models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := r.client.PostJSON(ctx, "/users/login", payload, &resp)
	return resp, err
}

// ImportUsers uploads a CSV of users
func (r *UserRepository) ImportUsers(ctx context.Context, filename string, data []byte) error {
	return r.client.PostMultipart(ctx, "/users/import", "file", filename, data, nil)
}

// ExportUsers downloads the users CSV blob
func (r *UserRepository) ExportUsers(ctx context.Context) ([]byte, error) {
	return r.client.GetBlob(ctx, "/users/export")
}

// RequestPasswordReset asks the backend to start a password reset
func (r *UserRepository) RequestPasswordReset(ctx context.Context, payload models.PasswordResetRequest) error {
	return r.client.PostJSON(ctx, "/users/password-reset/request", payload, nil)
}

// ConfirmPasswordReset completes a password reset
func (r *UserRepository) ConfirmPasswordReset(ctx context.Context, payload models.PasswordResetConfirm) error {
	return r.client.PostJSON(ctx, "/users/password-reset/confirm", payload, nil)
}
