package models

import (
	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// CourseEnrollment joins a student to a course
type CourseEnrollment struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"studentId"`
	CourseID  int64 `json:"courseId"`

	// Display fields populated on list endpoints
	StudentIndex string `json:"studentIndex,omitempty"`
	CourseCode   string `json:"courseCode,omitempty"`
	CourseName   string `json:"courseName,omitempty"`
}

// CourseStaffAssignment joins a staff user to a course
type CourseStaffAssignment struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	CourseID  int64           `json:"courseId"`
	StaffRole enums.StaffRole `json:"staffRole"`

	// Display fields populated on list endpoints
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	CourseCode string `json:"courseCode,omitempty"`
}

// StudentExamRegistration joins a student to an exam with an attendance status
type StudentExamRegistration struct {
	ID         int64            `json:"id"`
	StudentID  int64            `json:"studentId"`
	ExamID     int64            `json:"examId"`
	ExamStatus enums.ExamStatus `json:"examStatus"`

	// Display fields populated on list endpoints
	StudentIndex string    `json:"studentIndex,omitempty"`
	ExamCourse   string    `json:"examCourse,omitempty"`
	ExamSession  string    `json:"examSession,omitempty"`
	ExamDate     Date      `json:"examDate,omitempty"`
	StartTime    ClockTime `json:"startTime,omitempty"`
}
