package models

// Student defines a student profile as returned by the students endpoints.
// A Student and its User are two distinct backend records joined by UserID.
type Student struct {
	ID           int64  `json:"id" example:"3"`
	StudentIndex string `json:"studentIndex" example:"201234"` // Student's index number
	Major        string `json:"major" example:"KNI"`
	UserID       int64  `json:"userId" example:"5"` // ID of the linked user account

	// Display fields derived from the linked user, populated on list endpoints
	StudentFirstName string `json:"studentFirstName,omitempty"`
	StudentLastName  string `json:"studentLastName,omitempty"`
	StudentEmail     string `json:"studentEmail,omitempty"`
}

// CreateStudent is the payload for student create and edit calls
type CreateStudent struct {
	StudentIndex string `json:"studentIndex"`
	Major        string `json:"major"`
	UserID       int64  `json:"userId"`
}
