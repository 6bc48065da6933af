package models

import "time"

// EducationForm holds a user's education background. Submissions accumulate;
// reads always return the most recent row, so older rows are retained but
// effectively replaced.
type EducationForm struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Degree         string    `json:"degree"`
	Major          string    `json:"major"`
	University     string    `json:"university"`
	GraduationYear string    `json:"graduationYear"`
	GPA            string    `json:"gpa"`
	AdditionalInfo string    `json:"additionalInfo"`
	CreatedAt      time.Time `json:"createdAt"`
}

// JobApplication holds a user's work profile, with the same
// latest-row-wins semantics as EducationForm.
type JobApplication struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	FullName       string    `json:"fullName"`
	Position       string    `json:"position"`
	Experience     string    `json:"experience"`
	Skills         string    `json:"skills"`
	Phone          string    `json:"phone"`
	AdditionalInfo string    `json:"additionalInfo"`
	CreatedAt      time.Time `json:"createdAt"`
}
