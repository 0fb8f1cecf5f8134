package reports

import (
	"context"
	"fmt"
	"sort"
)

// ResolveEnrollments produces the effective list of subjects a student is
// scored in for a semester: the subjects taught to their home class that
// have assessments this semester, merged with any active special
// cross-class enrollments. When both paths name the same subject the
// special enrollment wins, because it designates the scoring class.
//
// Returns ErrNotFound for an unknown student or semester. A student with
// no scorable subjects yields an empty set, not an error.
func (s *Service) ResolveEnrollments(ctx context.Context, studentID, semesterID string) ([]ResolvedSubject, error) {
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

	bySubject := make(map[string]ResolvedSubject)

	// Home-class subjects first. Students without a home class only carry
	// special enrollments.
	if student.ClassID != nil {
		subjects, err := s.enrollments.ClassSubjects(ctx, *student.ClassID, semesterID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch class subjects: %w", err)
		}
		for _, sub := range subjects {
			bySubject[sub.ID] = ResolvedSubject{
				SubjectID:      sub.ID,
				SubjectName:    sub.Name,
				ScoringClassID: *student.ClassID,
				Kind:           EnrollRegular,
			}
		}
	}

	// Special enrollments override the scoring class for their subject.
	specials, err := s.enrollments.SpecialEnrollments(ctx, studentID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch special enrollments: %w", err)
	}
	for _, se := range specials {
		if !se.IsActive {
			continue
		}
		name := se.SubjectID
		if se.Subject != nil {
			name = se.Subject.Name
		}
		bySubject[se.SubjectID] = ResolvedSubject{
			SubjectID:      se.SubjectID,
			SubjectName:    name,
			ScoringClassID: se.ClassID,
			Kind:           EnrollSpecial,
		}
	}

	resolved := make([]ResolvedSubject, 0, len(bySubject))
	for _, rs := range bySubject {
		resolved = append(resolved, rs)
	}
	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].SubjectName != resolved[j].SubjectName {
			return resolved[i].SubjectName < resolved[j].SubjectName
		}
		return resolved[i].SubjectID < resolved[j].SubjectID
	})

	return resolved, nil
}
