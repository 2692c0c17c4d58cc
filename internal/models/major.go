package models

// Major is a study catalog entry. CountStudents is denormalized and kept in
// sync transactionally, same invariant as Role.CountUsers.
type Major struct {
	ID            int    `json:"id"`
	MajorName     string `json:"major_name"`
	Description   string `json:"major_description"`
	CountStudents int    `json:"count_students"`
}

// CreateMajorRequest is the payload for POST /majors/add
type CreateMajorRequest struct {
	MajorName   string `json:"major_name"`
	Description string `json:"major_description"`
}

// UpdateMajorDescriptionRequest is the payload for PUT /majors/update_description
type UpdateMajorDescriptionRequest struct {
	MajorName   string `json:"major_name"`
	Description string `json:"major_description"`
}
