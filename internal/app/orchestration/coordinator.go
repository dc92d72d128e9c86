// Package orchestration keeps a User record and its optional Student
// profile consistent across form submissions. The two are independent
// backend rows joined by userId; consistency comes from explicit sequential
// calls here, not from any transactional guarantee.
package orchestration

import (
	"context"
	"fmt"
	"strings"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
	"github.com/finki-emc/aas-client/internal/app/repositories"
	"github.com/finki-emc/aas-client/internal/pkg/logger"
)

// CompensationPolicy decides what happens to a freshly created User when the
// linked Student create fails
type CompensationPolicy int

const (
	// CompensationKeep leaves the User row in place (the historical behavior)
	CompensationKeep CompensationPolicy = iota
	// CompensationRollback deletes the User row so no partial state remains
	CompensationRollback
)

// StudentProfile is the student-specific part of the user form
type StudentProfile struct {
	StudentIndex string
	Major        string
}

// empty reports whether the form carried no student data
func (p StudentProfile) empty() bool {
	return strings.TrimSpace(p.StudentIndex) == "" || strings.TrimSpace(p.Major) == ""
}

// Coordinator orchestrates dual-record User/Student flows
type Coordinator struct {
	users    *repositories.UserRepository
	students *repositories.StudentRepository
	policy   CompensationPolicy
}

// NewCoordinator creates a coordinator with the given compensation policy
func NewCoordinator(users *repositories.UserRepository, students *repositories.StudentRepository, policy CompensationPolicy) *Coordinator {
	return &Coordinator{
		users:    users,
		students: students,
		policy:   policy,
	}
}

// CreateUserWithProfile creates the User first and, only on success, the
// linked Student profile when the role is STUDENT and the form carried both
// index and major. A Student-create failure is handled per the policy.
func (c *Coordinator) CreateUserWithProfile(ctx context.Context, payload models.CreateUser, profile StudentProfile) (*models.User, error) {
	user, err := c.users.Add(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if payload.UserRole != enums.RoleStudent || profile.empty() {
		return &user, nil
	}

	_, err = c.students.Add(ctx, models.CreateStudent{
		StudentIndex: profile.StudentIndex,
		Major:        profile.Major,
		UserID:       user.ID,
	})
	if err == nil {
		return &user, nil
	}

	logger.Error().Err(err).Int64("userId", user.ID).Msg("failed to create student profile")

	if c.policy == CompensationRollback {
		if delErr := c.users.Delete(ctx, user.ID); delErr != nil {
			logger.Error().Err(delErr).Int64("userId", user.ID).Msg("rollback of user failed")
			return &user, fmt.Errorf("student creation and user rollback both failed: %w", err)
		}
		return nil, fmt.Errorf("failed to create student profile: %w", err)
	}

	// Keep policy: the user row stays without a student profile
	return &user, fmt.Errorf("user created, but student profile failed: %w", err)
}

// UpdateUser edits the User and, when the role transitions from non-STUDENT
// to STUDENT with student data supplied, creates the linked profile.
func (c *Coordinator) UpdateUser(ctx context.Context, id int64, payload models.CreateUser, previousRole enums.UserRole, profile StudentProfile) error {
	if _, err := c.users.Edit(ctx, id, payload); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	becameStudent := previousRole != enums.RoleStudent && payload.UserRole == enums.RoleStudent
	if !becameStudent || profile.empty() {
		return nil
	}

	_, err := c.students.Add(ctx, models.CreateStudent{
		StudentIndex: profile.StudentIndex,
		Major:        profile.Major,
		UserID:       id,
	})
	if err != nil {
		return fmt.Errorf("user updated, but student profile failed: %w", err)
	}
	return nil
}

// UpdateStudent edits the linked user, then either edits the profile (role
// still STUDENT) or removes it while preserving the user.
func (c *Coordinator) UpdateStudent(ctx context.Context, student models.Student, studentPayload models.CreateStudent, userPayload models.CreateUser) error {
	if _, err := c.users.Edit(ctx, student.UserID, userPayload); err != nil {
		return fmt.Errorf("failed to update linked user: %w", err)
	}

	if userPayload.UserRole == enums.RoleStudent {
		if _, err := c.students.Edit(ctx, student.ID, studentPayload); err != nil {
			return fmt.Errorf("failed to update student profile: %w", err)
		}
		return nil
	}

	// Role moved away from STUDENT: drop the profile, keep the user
	if err := c.students.DeleteWithoutUser(ctx, student.ID); err != nil {
		return fmt.Errorf("failed to remove student profile: %w", err)
	}
	return nil
}

// DeleteUser removes a plain user row
func (c *Coordinator) DeleteUser(ctx context.Context, id int64) error {
	return c.users.Delete(ctx, id)
}

// DeleteStudentCascade removes both the student profile and its user
func (c *Coordinator) DeleteStudentCascade(ctx context.Context, studentID int64) error {
	return c.students.DeleteWithUser(ctx, studentID)
}

// DeleteStudentKeepUser removes the student profile only
func (c *Coordinator) DeleteStudentKeepUser(ctx context.Context, studentID int64) error {
	return c.students.DeleteWithoutUser(ctx, studentID)
}
