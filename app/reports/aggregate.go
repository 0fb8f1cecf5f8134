package reports

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"greenhill-schools/app/models"
)

// ScoreSubject combines a student's per-assessment-type averages for one
// resolved subject into a weighted final score and grades it. A broken
// weight configuration does not fail the call: the subject comes back with
// a zero score and an "Unavailable" remark so the rest of the report can
// still be built.
func (s *Service) ScoreSubject(ctx context.Context, studentID string, rs ResolvedSubject, semesterID string) (SubjectResult, error) {
	result := SubjectResult{
		SubjectID:   rs.SubjectID,
		SubjectName: rs.SubjectName,
		Kind:        rs.Kind,
	}

	records, err := s.assessments.StudentAverages(ctx, studentID, rs.SubjectID, rs.ScoringClassID, semesterID)
	if err != nil {
		return result, fmt.Errorf("failed to fetch assessment averages: %w", err)
	}

	total, completed, err := s.assessments.Counts(ctx, studentID, rs.SubjectID, rs.ScoringClassID, semesterID)
	if err != nil {
		return result, fmt.Errorf("failed to fetch assessment counts: %w", err)
	}
	result.TotalAssessments = total
	result.CompletedAssessments = completed

	score, err := combineWeighted(records)
	if err != nil {
		// ConfigError: the subject stays on the report as unavailable.
		result.FinalScore = 0
		result.Remark = "Unavailable"
		return result, nil
	}

	band := Classify(score)
	result.FinalScore = score
	result.Grade = band.Grade
	result.GradePoint = band.Points
	result.Remark = band.Remark
	return result, nil
}

// combineWeighted applies the two-phase weighting rule.
//
// Phase one accumulates every type with a positive weight and a present
// average. Phase two blends the mean of the weight-less types into
// whatever weight budget is left, but only when some budget remains:
// unweighted types never displace weighted ones once weights total 100.
// Weight sums above 100 are passed through uncapped.
//
// The returned score is rounded to one decimal place and is 0 when no
// type produced a score.
func combineWeighted(records []*models.AssessmentRecord) (float64, error) {
	var (
		weightedSum float64
		weightUsed  float64
		unweighted  []float64
	)

	for _, rec := range records {
		if rec.Weight < 0 {
			return 0, &ConfigError{SubjectID: rec.SubjectID, Reason: fmt.Sprintf("negative weight for %s", rec.TypeName)}
		}
		if rec.Average == nil {
			continue
		}
		if rec.Weight > 0 {
			weightedSum += *rec.Average * rec.Weight / 100
			weightUsed += rec.Weight
		} else {
			unweighted = append(unweighted, *rec.Average)
		}
	}

	if len(unweighted) > 0 && weightUsed < 100 {
		mean, err := stats.Mean(unweighted)
		if err != nil {
			return 0, &ConfigError{Reason: fmt.Sprintf("unweighted mean: %v", err)}
		}
		remaining := 100 - weightUsed
		weightedSum += mean * remaining / 100
		weightUsed = 100
	}

	if weightUsed == 0 {
		return 0, nil
	}
	return round1(weightedSum), nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
