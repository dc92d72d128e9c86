package models

import (
	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// User defines a user account as returned by the users endpoints
type User struct {
	ID        int64          `json:"id" example:"5"`
	FirstName string         `json:"firstName" example:"Ana"`
	LastName  string         `json:"lastName" example:"Petrovska"`
	Email     string         `json:"email" example:"ana@x.com"`
	UserRole  enums.UserRole `json:"userRole" example:"STUDENT"` // Drives action visibility, not authorization
}

// UserSummary is the compact user reference embedded in other resources
type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CreateUser is the payload for user create and edit calls
type CreateUser struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	Password  string         `json:"password,omitempty"`
	UserRole  enums.UserRole `json:"userRole"`
}

// RegisterUser is the payload for the self-registration endpoint
type RegisterUser struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	UserRole  enums.UserRole `json:"userRole"`
}

// LoginRequest is the payload for the login endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// PasswordResetRequest asks the backend to start a password reset
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm completes a password reset with the emailed token
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MyProfile is the shape of the /users/me endpoint
type MyProfile struct {
	UserID       int64                   `json:"userId"`
	FirstName    string                  `json:"firstName"`
	LastName     string                  `json:"lastName"`
	Email        string                  `json:"email"`
	UserRole     enums.UserRole          `json:"userRole"`
	StudentID    *int64                  `json:"studentId,omitempty"`
	StudentIndex string                  `json:"studentIndex,omitempty"`
	Major        string                  `json:"major,omitempty"`
	StaffID      *int64                  `json:"staffId,omitempty"`
	StaffRole    string                  `json:"staffRole,omitempty"`
	AsStudent    []CourseEnrollment      `json:"asStudent,omitempty"`
	AsStaff      []CourseStaffAssignment `json:"asStaff,omitempty"`
}
