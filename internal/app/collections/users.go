package collections

import (
	"context"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/repositories"
)

// UserModes configures the error mode per user operation. Add defaults to
// Propagate: the users page needs the created row's id to build a linked
// student profile, so its failure must reach the caller.
type UserModes struct {
	Add    ErrorMode
	Edit   ErrorMode
	Delete ErrorMode
	Import ErrorMode
}

// DefaultUserModes returns the modes the console runs with
func DefaultUserModes() UserModes {
	return UserModes{Add: Propagate}
}

// Users is the user collection store
type Users struct {
	*Collection[models.User]

	users *repositories.UserRepository
	modes UserModes
}

// NewUsers creates the user store and performs the mount fetch
func NewUsers(ctx context.Context, repos *repositories.Repositories, modes UserModes) *Users {
	s := &Users{
		Collection: NewCollection("users", repos.User.FindAll),
		users:      repos.User,
		modes:      modes,
	}
	s.Refresh(ctx)
	return s
}

// FindByID fetches a single user without touching collection state
func (s *Users) FindByID(ctx context.Context, id int64) *models.User {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.fail("findById", Swallow, err)
		return nil
	}
	return &user
}

// OnAdd creates a user, resynchronizes the collection and returns the
// created row
func (s *Users) OnAdd(ctx context.Context, payload models.CreateUser) (*models.User, error) {
	user, err := s.users.Add(ctx, payload)
	if err != nil {
		return nil, s.fail("add", s.modes.Add, err)
	}
	s.Refresh(ctx)
	return &user, nil
}

// OnEdit updates a user and resynchronizes the collection
func (s *Users) OnEdit(ctx context.Context, id int64, payload models.CreateUser) error {
	return s.mutate(ctx, "edit", s.modes.Edit, func(ctx context.Context) error {
		_, err := s.users.Edit(ctx, id, payload)
		return err
	})
}

// OnDelete removes a user and resynchronizes the collection
func (s *Users) OnDelete(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete", s.modes.Delete, func(ctx context.Context) error {
		return s.users.Delete(ctx, id)
	})
}

// Me fetches the logged-in user's profile. Returns nil when the call fails.
func (s *Users) Me(ctx context.Context) *models.MyProfile {
	profile, err := s.users.Me(ctx)
	if err != nil {
		s.fail("me", Swallow, err)
		return nil
	}
	return &profile
}

// Register self-registers a new account; does not touch the collection
func (s *Users) Register(ctx context.Context, payload models.RegisterUser) *models.User {
	user, err := s.users.Register(ctx, payload)
	if err != nil {
		s.fail("register", Swallow, err)
		return nil
	}
	return &user
}

// ImportUsers uploads a users CSV and resynchronizes
func (s *Users) ImportUsers(ctx context.Context, filename string, data []byte) error {
	return s.mutate(ctx, "importUsers", s.modes.Import, func(ctx context.Context) error {
		return s.users.ImportUsers(ctx, filename, data)
	})
}

// ExportUsers downloads the users CSV blob for the caller to save
func (s *Users) ExportUsers(ctx context.Context) []byte {
	blob, err := s.users.ExportUsers(ctx)
	if err != nil {
		s.fail("exportUsers", Swallow, err)
		return nil
	}
	return blob
}

// RequestPasswordReset asks the backend to start a password reset
func (s *Users) RequestPasswordReset(ctx context.Context, email string) error {
	err := s.users.RequestPasswordReset(ctx, models.PasswordResetRequest{Email: email})
	if err != nil {
		return s.fail("requestPasswordReset", Swallow, err)
	}
	return nil
}

// ConfirmPasswordReset completes a password reset
func (s *Users) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	err := s.users.ConfirmPasswordReset(ctx, models.PasswordResetConfirm{Token: token, NewPassword: newPassword})
	if err != nil {
		return s.fail("confirmPasswordReset", Swallow, err)
	}
	return nil
}
