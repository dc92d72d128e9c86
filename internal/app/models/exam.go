package models

// ExamCourse is the embedded course reference on an exam
type ExamCourse struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
}

// Exam defines an exam as returned by the exams endpoints
type Exam struct {
	ID                   int64      `json:"id" example:"7"`
	Session              string     `json:"session" example:"January 2026"` // Exam session label
	DateOfExam           Date       `json:"dateOfExam"`
	StartTime            ClockTime  `json:"startTime"`
	EndTime              ClockTime  `json:"endTime"`
	CapacityOfStudents   int        `json:"capacityOfStudents" example:"120"`
	ReservedLaboratories []string   `json:"reservedLaboratories"` // Ordered list of reserved lab names
	Course               ExamCourse `json:"course"`
}

// CreateExam is the payload for exam create and edit calls
type CreateExam struct {
	Session              string    `json:"session"`
	DateOfExam           Date      `json:"dateOfExam"`
	StartTime            ClockTime `json:"startTime"`
	EndTime              ClockTime `json:"endTime"`
	CapacityOfStudents   int       `json:"capacityOfStudents"`
	ReservedLaboratories []string  `json:"reservedLaboratories"`
	CourseID             int64     `json:"courseId"`
}
