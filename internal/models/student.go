package models

import "time"

// Student belongs to exactly one major. Moving a student between majors keeps
// both major counters in sync inside one transaction, same pattern as roles.
type Student struct {
	ID             int       `json:"id"`
	PhoneNumber    string    `json:"phone_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	EnrollmentYear int       `json:"enrollment_year"`
	Course         int       `json:"course"`
	SpecialNotes   *string   `json:"special_notes"`
	MajorID        int       `json:"major_id"`
}

// StudentWithMajor is a student joined with its major name
type StudentWithMajor struct {
	Student
	MajorName string `json:"major"`
}

// StudentFilter narrows student listings. Zero values mean "no filter".
type StudentFilter struct {
	Course         int
	MajorID        int
	EnrollmentYear int
}

// CreateStudentRequest is the payload for POST /students/add
type CreateStudentRequest struct {
	PhoneNumber    string  `json:"phone_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	DateOfBirth    string  `json:"date_of_birth"` // YYYY-MM-DD
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	EnrollmentYear int     `json:"enrollment_year"`
	Course         int     `json:"course"`
	SpecialNotes   *string `json:"special_notes"`
	MajorID        int     `json:"major_id"`
}

// UpdateStudentRequest is the payload for PUT /students/update/{id}.
// Nil fields are left unchanged.
type UpdateStudentRequest struct {
	PhoneNumber    *string `json:"phone_number"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Address        *string `json:"address"`
	EnrollmentYear *int    `json:"enrollment_year"`
	Course         *int    `json:"course"`
	SpecialNotes   *string `json:"special_notes"`
	MajorID        *int    `json:"major_id"`
}
