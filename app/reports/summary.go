package reports

import (
	"github.com/montanaflynn/stats"
)

// Summarize rolls per-subject results up into a student's GPA, overall
// average and overall grade. Only subjects with a recorded score count;
// a subject the student never attempted changes neither GPA nor average.
func Summarize(results []SubjectResult) StudentSummary {
	var points, scores []float64
	for _, r := range results {
		if r.FinalScore > 0 {
			points = append(points, r.GradePoint)
			scores = append(scores, r.FinalScore)
		}
	}

	summary := StudentSummary{SubjectCount: len(scores)}
	if len(scores) > 0 {
		gpa, _ := stats.Mean(points)
		avg, _ := stats.Mean(scores)
		summary.GPA = round2(gpa)
		summary.OverallAverage = round1(avg)
	}

	band := Classify(summary.OverallAverage)
	summary.OverallGrade = band.Grade
	summary.OverallRemark = band.Remark
	return summary
}
