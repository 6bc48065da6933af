package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avenk/careerpath-be/internal/models"
)

// analysis is the subset of the gateway's result blob the renderer knows how
// to lay out. Fields the gateway adds beyond these are preserved verbatim in
// the stored snapshot, just not pretty-printed.
type analysis struct {
	CareerPaths []struct {
		Title       string   `json:"title"`
		Match       int      `json:"match"`
		Description string   `json:"description"`
		Salary      string   `json:"salary"`
		Education   string   `json:"education"`
		Growth      string   `json:"growth"`
		Skills      []string `json:"skills"`
	} `json:"careerPaths"`
	PersonalityType        string   `json:"personalityType"`
	PersonalityDescription string   `json:"personalityDescription"`
	Strengths              []string `json:"strengths"`
	Interests              []string `json:"interests"`
	Values                 []string `json:"values"`
}

// Render produces the downloadable text report for a snapshot. It is a pure
// function: identical snapshots produce identical bytes.
func Render(snap models.ReportSnapshot) []byte {
	var b strings.Builder

	line := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\nCAREER ASSESSMENT REPORT\n%s\n\n", line, line)
	fmt.Fprintf(&b, "Report ID:    %s\n", snap.UniqueID)
	fmt.Fprintf(&b, "Generated:    %s\n", snap.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Name:         %s\n", snap.UserName)
	fmt.Fprintf(&b, "Email:        %s\n\n", snap.UserEmail)

	writeResults(&b, snap.Results)

	if snap.EducationForm != nil {
		f := snap.EducationForm
		fmt.Fprintf(&b, "EDUCATION\n%s\n", strings.Repeat("-", 60))
		fmt.Fprintf(&b, "Degree:          %s\n", f.Degree)
		fmt.Fprintf(&b, "Major:           %s\n", f.Major)
		fmt.Fprintf(&b, "University:      %s\n", f.University)
		fmt.Fprintf(&b, "Graduation Year: %s\n", f.GraduationYear)
		fmt.Fprintf(&b, "GPA:             %s\n", f.GPA)
		if f.AdditionalInfo != "" {
			fmt.Fprintf(&b, "Notes:           %s\n", f.AdditionalInfo)
		}
		b.WriteString("\n")
	}

	if snap.JobApplication != nil {
		a := snap.JobApplication
		fmt.Fprintf(&b, "WORK PROFILE\n%s\n", strings.Repeat("-", 60))
		fmt.Fprintf(&b, "Full Name:   %s\n", a.FullName)
		fmt.Fprintf(&b, "Position:    %s\n", a.Position)
		fmt.Fprintf(&b, "Experience:  %s\n", a.Experience)
		fmt.Fprintf(&b, "Skills:      %s\n", a.Skills)
		fmt.Fprintf(&b, "Phone:       %s\n", a.Phone)
		if a.AdditionalInfo != "" {
			fmt.Fprintf(&b, "Notes:       %s\n", a.AdditionalInfo)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\nEnd of report %s\n", line, snap.UniqueID)

	return []byte(b.String())
}

func writeResults(b *strings.Builder, results json.RawMessage) {
	var a analysis
	if err := json.Unmarshal(results, &a); err != nil || len(a.CareerPaths) == 0 {
		// Unknown result shape: include it as indented JSON rather than drop it.
		var buf bytes.Buffer
		if json.Indent(&buf, results, "", "  ") == nil {
			fmt.Fprintf(b, "ASSESSMENT RESULTS\n%s\n%s\n\n", strings.Repeat("-", 60), buf.String())
		}
		return
	}

	fmt.Fprintf(b, "RECOMMENDED CAREER PATHS\n%s\n", strings.Repeat("-", 60))
	for i, p := range a.CareerPaths {
		fmt.Fprintf(b, "%d. %s (%d%% match)\n", i+1, p.Title, p.Match)
		fmt.Fprintf(b, "   %s\n", p.Description)
		fmt.Fprintf(b, "   Salary:    %s\n", p.Salary)
		fmt.Fprintf(b, "   Education: %s\n", p.Education)
		fmt.Fprintf(b, "   Growth:    %s\n", p.Growth)
		if len(p.Skills) > 0 {
			fmt.Fprintf(b, "   Skills:    %s\n", strings.Join(p.Skills, ", "))
		}
		b.WriteString("\n")
	}

	if a.PersonalityType != "" {
		fmt.Fprintf(b, "PERSONALITY PROFILE\n%s\n", strings.Repeat("-", 60))
		fmt.Fprintf(b, "Type: %s\n%s\n\n", a.PersonalityType, a.PersonalityDescription)
	}
	writeList(b, "Strengths", a.Strengths)
	writeList(b, "Interests", a.Interests)
	writeList(b, "Values", a.Values)
	b.WriteString("\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
