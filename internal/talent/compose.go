package talent

import (
	"strings"
)

// ComposeCandidateText flattens a profile into one labeled text blob for
// comparison. Field order is fixed and empty fields are omitted entirely, so
// the same profile always composes to the same string.
func ComposeCandidateText(p *CandidateProfile) string {
	if p == nil {
		return ""
	}

	var segments []string

	if joined := joinNonEmpty(p.Skills); joined != "" {
		segments = append(segments, "Skills: "+joined)
	}
	if title := strings.TrimSpace(p.ProfessionalTitle); title != "" {
		segments = append(segments, "Title: "+title)
	}
	if bio := strings.TrimSpace(p.Bio); bio != "" {
		segments = append(segments, "Bio: "+bio)
	}

	var experience []string
	for _, entry := range p.Experience {
		line := joinNonEmpty([]string{entry.Position, entry.Company, entry.Description})
		if line != "" {
			experience = append(experience, line)
		}
	}
	if len(experience) > 0 {
		segments = append(segments, "Experience: "+strings.Join(experience, "; "))
	}

	var education []string
	for _, entry := range p.Education {
		line := joinNonEmpty([]string{entry.Degree, entry.Field, entry.Institution})
		if line != "" {
			education = append(education, line)
		}
	}
	if len(education) > 0 {
		segments = append(segments, "Education: "+strings.Join(education, "; "))
	}

	if joined := joinNonEmpty(p.Certifications); joined != "" {
		segments = append(segments, "Certifications: "+joined)
	}

	return strings.Join(segments, ". ")
}

// ComposeJobText flattens a posting the same way: fixed field order, labeled
// segments, empty fields omitted.
func ComposeJobText(j *JobPosting) string {
	if j == nil {
		return ""
	}

	var segments []string

	if desc := strings.TrimSpace(j.Description); desc != "" {
		segments = append(segments, "Description: "+desc)
	}
	if reqs := strings.TrimSpace(j.Requirements); reqs != "" {
		segments = append(segments, "Requirements: "+reqs)
	}
	if preferred := strings.TrimSpace(j.PreferredQualifications); preferred != "" {
		segments = append(segments, "Preferred Qualifications: "+preferred)
	}
	if joined := joinNonEmpty(j.Skills); joined != "" {
		segments = append(segments, "Skills: "+joined)
	}

	return strings.Join(segments, ". ")
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ", ")
}
