package reports

import (
	"context"
	"fmt"
	"strings"
)

// BuildReportCard assembles the full report card document for one student
// and semester: resolved subjects, scored and graded, plus the summary
// line. Returns ErrNotFound for an unknown student or semester; a student
// with no scorable subjects yields a document with an empty subject list
// (callers surface that as "no data", never as a blank report).
func (s *Service) BuildReportCard(ctx context.Context, studentID, semesterID string) (*ReportCardDocument, error) {
	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFound("student", studentID)
	}

	semester, err := s.semesters.Get(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, notFound("semester", semesterID)
	}

	resolved, err := s.ResolveEnrollments(ctx, studentID, semesterID)
	if err != nil {
		return nil, err
	}

	results := make([]SubjectResult, 0, len(resolved))
	for _, rs := range resolved {
		result, err := s.ScoreSubject(ctx, studentID, rs, semesterID)
		if err != nil {
			return nil, fmt.Errorf("failed to score %s: %w", rs.SubjectName, err)
		}
		results = append(results, result)
	}

	className, classCode := "", ""
	if student.ClassID != nil {
		if class, err := s.classes.Get(ctx, *student.ClassID); err == nil && class != nil {
			className = class.Name
			classCode = class.Code
		}
	}

	doc := &ReportCardDocument{
		Student:   student,
		ClassName: className,
		Semester:  semester,
		Subjects:  results,
		Summary:   Summarize(results),
	}
	doc.Filename = documentName(classCode, student.LastName, student.FirstName, semester.Name)
	return doc, nil
}

// documentName builds the deterministic archive name for a report card,
// sanitized to a safe filename charset.
func documentName(class, lastName, firstName, semester string) string {
	return sanitizeFilename(fmt.Sprintf("%s_%s_%s_%s", class, lastName, firstName, semester))
}

// sanitizeFilename keeps [A-Za-z0-9._-], mapping every other rune to an
// underscore and collapsing runs so names stay readable.
func sanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
