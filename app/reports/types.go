package reports

import (
	"greenhill-schools/app/models"
)

// EnrollmentKind tells which enrollment path put a subject on a student's
// report: the home class, or a special cross-class enrollment.
type EnrollmentKind string

const (
	EnrollRegular EnrollmentKind = "regular"
	EnrollSpecial EnrollmentKind = "special"
)

// ResolvedSubject is one subject a student is scored in for a semester,
// with the class whose assessments count. Resolved once by
// ResolveEnrollments and never re-derived downstream.
type ResolvedSubject struct {
	SubjectID      string         `json:"subject_id"`
	SubjectName    string         `json:"subject_name"`
	ScoringClassID string         `json:"scoring_class_id"`
	Kind           EnrollmentKind `json:"kind"`
}

// SubjectResult holds one subject's computed outcome for a student.
// FinalScore is 0 when no assessment type produced a score.
type SubjectResult struct {
	SubjectID            string         `json:"subject_id"`
	SubjectName          string         `json:"subject_name"`
	Kind                 EnrollmentKind `json:"kind"`
	FinalScore           float64        `json:"final_score"`
	Grade                string         `json:"grade"`
	GradePoint           float64        `json:"grade_point"`
	Remark               string         `json:"remark"`
	TotalAssessments     int            `json:"total_assessments"`
	CompletedAssessments int            `json:"completed_assessments"`
}

// StudentSummary rolls a student's subject results up into one line.
// Subjects with no recorded score are excluded from GPA and average.
type StudentSummary struct {
	SubjectCount   int     `json:"subject_count"`
	GPA            float64 `json:"gpa"`
	OverallAverage float64 `json:"overall_average"`
	OverallGrade   string  `json:"overall_grade"`
	OverallRemark  string  `json:"overall_remark"`
}

// ReportCardDocument is the immutable snapshot handed to an external
// renderer for one student and semester. Built fresh per request; never
// persisted by this package.
type ReportCardDocument struct {
	Student   *models.Student  `json:"student"`
	ClassName string           `json:"class_name"`
	Semester  *models.Semester `json:"semester"`
	Subjects  []SubjectResult  `json:"subjects"`
	Summary   StudentSummary   `json:"summary"`
	Filename  string           `json:"filename"`
}

// ClassTableRow is one student's line on a class results sheet. Rank is 0
// for students with no recorded results; consumers render a placeholder.
type ClassTableRow struct {
	Student    *models.Student           `json:"student"`
	Rank       int                       `json:"rank"`
	HasResults bool                      `json:"has_results"`
	Results    map[string]*SubjectResult `json:"results"` // keyed by subject name
	Summary    StudentSummary            `json:"summary"`
}

// PageColumn is one subject column on a class table page.
type PageColumn struct {
	Abbrev  string `json:"abbrev"`
	Subject string `json:"subject"`
}

// LegendEntry maps an abbreviated column header back to the full subject name.
type LegendEntry struct {
	Abbrev  string `json:"abbrev"`
	Subject string `json:"subject"`
}

// ClassTablePage holds up to the configured maximum of subject columns.
// Student name and rank columns repeat on every page.
type ClassTablePage struct {
	Number  int           `json:"number"`
	Columns []PageColumn  `json:"columns"`
	Legend  []LegendEntry `json:"legend"`
}

// ClassTable is the ranked, paginated student x subject score matrix for a
// class and semester, handed to an external tabular renderer.
type ClassTable struct {
	Class    *models.Class    `json:"class"`
	Semester *models.Semester `json:"semester"`
	Subjects []string         `json:"subjects"` // sorted alphabetically
	Rows     []ClassTableRow  `json:"rows"`     // ranked order
	Pages    []ClassTablePage `json:"pages"`
}

// BatchError records one student's failure during a bulk run.
type BatchError struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Reason      string `json:"reason"`
}

// BatchReport is the outcome of a bulk report run over a class: every
// student lands either in Documents or in Errors, never both.
type BatchReport struct {
	BatchID   string                `json:"batch_id"`
	Class     *models.Class         `json:"class"`
	Semester  *models.Semester      `json:"semester"`
	Documents []*ReportCardDocument `json:"documents"`
	Errors    []BatchError          `json:"errors"`
}

// Succeeded returns the number of students whose documents were built.
func (b *BatchReport) Succeeded() int { return len(b.Documents) }

// Failed returns the number of students captured as errors.
func (b *BatchReport) Failed() int { return len(b.Errors) }
