package reports

import (
	"context"
	"sort"
)

// BuildClassTable assembles the ranked, paginated results sheet for a
// class and semester. Every student in the class appears as a row; ranks
// run 1..k over students with recorded results, ordered by name, while the
// rest trail unranked in name order. Subjects are paginated into pages of
// at most maxColumns columns (0 or negative selects the default of 8),
// each with its own abbreviation legend.
func (s *Service) BuildClassTable(ctx context.Context, classID, semesterID string, maxColumns int) (*ClassTable, error) {
	if maxColumns <= 0 {
		maxColumns = defaultMaxColumns
	}

	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, notFound("class", classID)
	}

	semester, err := s.semesters.Get(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, notFound("semester", semesterID)
	}

	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	subjectSet := make(map[string]struct{})
	rows := make([]ClassTableRow, 0, len(students))

	for _, student := range students {
		row := ClassTableRow{
			Student: student,
			Results: make(map[string]*SubjectResult),
		}

		resolved, err := s.ResolveEnrollments(ctx, student.ID, semesterID)
		if err != nil {
			// The student still appears on the sheet, just without marks.
			rows = append(rows, row)
			continue
		}

		results := make([]SubjectResult, 0, len(resolved))
		for _, rs := range resolved {
			result, err := s.ScoreSubject(ctx, student.ID, rs, semesterID)
			if err != nil {
				continue
			}
			subjectSet[result.SubjectName] = struct{}{}
			results = append(results, result)
			r := result
			row.Results[result.SubjectName] = &r
			if result.FinalScore > 0 {
				row.HasResults = true
			}
		}
		row.Summary = Summarize(results)
		rows = append(rows, row)
	}

	subjects := make([]string, 0, len(subjectSet))
	for name := range subjectSet {
		subjects = append(subjects, name)
	}
	sort.Strings(subjects)

	rankRows(rows)

	return &ClassTable{
		Class:    class,
		Semester: semester,
		Subjects: subjects,
		Rows:     rows,
		Pages:    paginate(subjects, maxColumns),
	}, nil
}

// rankRows orders rows by (has results, last name, first name) and assigns
// sequential ranks to the students with results. Rank is positional: equal
// scores do not share a rank.
func rankRows(rows []ClassTableRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].HasResults != rows[j].HasResults {
			return rows[i].HasResults
		}
		if rows[i].Student.LastName != rows[j].Student.LastName {
			return rows[i].Student.LastName < rows[j].Student.LastName
		}
		return rows[i].Student.FirstName < rows[j].Student.FirstName
	})

	rank := 0
	for i := range rows {
		if rows[i].HasResults {
			rank++
			rows[i].Rank = rank
		}
	}
}

// paginate splits the sorted subject list into fixed-width column pages.
// Concatenating the pages reproduces the subject list exactly; each page's
// legend covers exactly its own columns.
func paginate(subjects []string, maxColumns int) []ClassTablePage {
	columns := abbreviateAll(subjects)

	var pages []ClassTablePage
	for start := 0; start < len(columns); start += maxColumns {
		end := start + maxColumns
		if end > len(columns) {
			end = len(columns)
		}
		page := ClassTablePage{
			Number:  len(pages) + 1,
			Columns: columns[start:end],
		}
		for _, col := range page.Columns {
			page.Legend = append(page.Legend, LegendEntry(col))
		}
		pages = append(pages, page)
	}
	return pages
}
