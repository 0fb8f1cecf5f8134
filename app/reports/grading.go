package reports

// GradeBand is one row of the grading scale.
type GradeBand struct {
	MinScore float64
	Grade    string
	Points   float64
	Remark   string
}

// gradeScale is evaluated top-down; the first band whose MinScore the score
// reaches wins. The final band catches everything below 45.
var gradeScale = []GradeBand{
	{80, "A1", 4.0, "Excellent"},
	{75, "B2", 3.5, "Very Good"},
	{70, "B3", 3.0, "Good"},
	{65, "C4", 2.5, "Credit"},
	{60, "C5", 2.0, "Credit"},
	{55, "C6", 1.5, "Credit"},
	{50, "D7", 1.0, "Pass"},
	{45, "E8", 0.5, "Pass"},
	{0, "F9", 0.0, "Fail"},
}

// Classify maps a numeric score to its grade band. Total over all float
// inputs: anything below the E8 threshold, negatives included, is F9.
func Classify(score float64) GradeBand {
	for _, band := range gradeScale[:len(gradeScale)-1] {
		if score >= band.MinScore {
			return band
		}
	}
	return gradeScale[len(gradeScale)-1]
}
