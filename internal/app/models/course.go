package models

// Course defines a course as returned by the courses endpoints
type Course struct {
	ID           int64  `json:"id" example:"1"`                         // Unique identifier for the course
	CourseCode   string `json:"courseCode" example:"F23L3S012"`         // Course code, unique per semester and year
	CourseName   string `json:"courseName" example:"Web Based Systems"` // Human-readable course name
	Semester     int    `json:"semester" example:"5"`                   // Semester the course is taught in
	AcademicYear int    `json:"academicYear" example:"2025"`            // Academic year the course runs in

	// Staff (populated when the backend expands assignments)
	Professors []UserSummary `json:"professors,omitempty"`
	Assistants []UserSummary `json:"assistants,omitempty"`
}

// CreateCourse is the payload for course create and edit calls
type CreateCourse struct {
	CourseCode   string  `json:"courseCode"`
	CourseName   string  `json:"courseName"`
	Semester     int     `json:"semester"`
	AcademicYear int     `json:"academicYear"`
	ProfessorIDs []int64 `json:"professorIds,omitempty"`
	AssistantIDs []int64 `json:"assistantIds,omitempty"`
}
