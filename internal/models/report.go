package models

import (
	"encoding/json"
	"time"
)

// PdfReport is the immutable audit row written for every generated report.
// UniqueID is the external-facing identifier used by the public share-link
// lookup; the payload is the frozen snapshot of the assessment results and
// optional form data at generation time.
type PdfReport struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userId"`
	UniqueID         string          `json:"uniqueId"`
	AssessmentID     int64           `json:"assessmentId"`
	EducationFormID  *int64          `json:"educationFormId,omitempty"`
	JobApplicationID *int64          `json:"jobApplicationId,omitempty"`
	Payload          json.RawMessage `json:"payload"`
	FilePath         *string         `json:"filePath,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ReportSnapshot is the material captured into a PdfReport payload and fed to
// the renderer.
type ReportSnapshot struct {
	UniqueID       string          `json:"uniqueId"`
	UserEmail      string          `json:"userEmail"`
	UserName       string          `json:"userName"`
	Results        json.RawMessage `json:"results"`
	EducationForm  *EducationForm  `json:"educationForm,omitempty"`
	JobApplication *JobApplication `json:"jobApplication,omitempty"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}
