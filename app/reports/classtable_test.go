package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhill-schools/app/models"
)

func classTableFixture() *fakeStore {
	f := newFakeStore()
	f.addClass("c1", "Primary Five", "P5")
	f.addSemester("sem1", "Term 1")

	f.addClassSubject("c1", "sem1", &models.Subject{ID: "sub-math", Name: "Mathematics"})
	f.addClassSubject("c1", "sem1", &models.Subject{ID: "sub-eng", Name: "English Language"})

	// Three students with marks, two without any attempts.
	for _, s := range []struct{ id, first, last string }{
		{"st1", "Amina", "Kato"},
		{"st2", "Brian", "Okello"},
		{"st3", "Cissy", "Nabirye"},
		{"st4", "David", "Ssali"},
		{"st5", "Esther", "Auma"},
	} {
		f.addStudent(s.id, s.first, s.last, "c1")
	}
	for _, id := range []string{"st1", "st2", "st3"} {
		f.setAverages(id, "sub-math", "c1", record("Exam", 100, fptr(70)))
		f.setAverages(id, "sub-eng", "c1", record("Exam", 100, fptr(65)))
	}
	return f
}

func TestBuildClassTableRanking(t *testing.T) {
	svc := newTestService(classTableFixture())

	table, err := svc.BuildClassTable(context.Background(), "c1", "sem1", 0)
	require.NoError(t, err)
	require.Len(t, table.Rows, 5)

	// Attempters first, ranked 1..3 in name order; non-attempters trail
	// unranked, also in name order.
	assert.Equal(t, "Kato", table.Rows[0].Student.LastName)
	assert.Equal(t, "Nabirye", table.Rows[1].Student.LastName)
	assert.Equal(t, "Okello", table.Rows[2].Student.LastName)
	assert.Equal(t, "Auma", table.Rows[3].Student.LastName)
	assert.Equal(t, "Ssali", table.Rows[4].Student.LastName)

	for i, row := range table.Rows[:3] {
		assert.True(t, row.HasResults)
		assert.Equal(t, i+1, row.Rank)
	}
	for _, row := range table.Rows[3:] {
		assert.False(t, row.HasResults)
		assert.Zero(t, row.Rank)
	}
}

func TestBuildClassTableRanksAreUnique(t *testing.T) {
	svc := newTestService(classTableFixture())

	table, err := svc.BuildClassTable(context.Background(), "c1", "sem1", 0)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, row := range table.Rows {
		if row.Rank == 0 {
			continue
		}
		assert.False(t, seen[row.Rank], "rank %d assigned twice", row.Rank)
		seen[row.Rank] = true
	}
}

func TestBuildClassTableSubjectsAndResults(t *testing.T) {
	svc := newTestService(classTableFixture())

	table, err := svc.BuildClassTable(context.Background(), "c1", "sem1", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"English Language", "Mathematics"}, table.Subjects)

	top := table.Rows[0]
	require.Contains(t, top.Results, "Mathematics")
	assert.Equal(t, 70.0, top.Results["Mathematics"].FinalScore)
	assert.Equal(t, "B3", top.Results["Mathematics"].Grade)
	assert.Equal(t, 2, top.Summary.SubjectCount)
}

func TestBuildClassTableUnknownClass(t *testing.T) {
	svc := newTestService(classTableFixture())

	_, err := svc.BuildClassTable(context.Background(), "missing", "sem1", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaginateCoversAllSubjects(t *testing.T) {
	subjects := []string{
		"Agriculture", "Art", "Business Studies", "Christian Religious Education",
		"English Language", "Fine Art", "Integrated Science", "Kiswahili",
		"Literature in English", "Mathematics",
	}

	pages := paginate(subjects, 4)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Columns, 4)
	assert.Len(t, pages[1].Columns, 4)
	assert.Len(t, pages[2].Columns, 2)

	var rebuilt []string
	for _, page := range pages {
		require.Len(t, page.Legend, len(page.Columns), "legend must cover exactly the page's columns")
		for i, col := range page.Columns {
			rebuilt = append(rebuilt, col.Subject)
			assert.Equal(t, col.Abbrev, page.Legend[i].Abbrev)
			assert.Equal(t, col.Subject, page.Legend[i].Subject)
		}
	}
	assert.Equal(t, subjects, rebuilt)
}

func TestPaginateDefaultsApply(t *testing.T) {
	svc := newTestService(classTableFixture())

	table, err := svc.BuildClassTable(context.Background(), "c1", "sem1", -1)
	require.NoError(t, err)
	require.Len(t, table.Pages, 1)
	assert.Len(t, table.Pages[0].Columns, 2)
	assert.Equal(t, 1, table.Pages[0].Number)
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Mathematics", "MATH"},                // known long name
		{"Social Studies", "SST"},              // known long name
		{"Art", "Art"},                         // short enough as-is
		{"Creative Performing Arts", "CPA"},    // unknown, initials
		{"Luganda Language Studies", "LLS"},    // unknown, initials
		{"science and technology", "SAT"},      // initials upper-cased
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, abbreviate(tt.name), tt.name)
	}
}

func TestAbbreviateAllDisambiguates(t *testing.T) {
	columns := abbreviateAll([]string{
		"Creative Performing Arts",
		"Certified Practical Agriculture", // same initials
	})
	require.Len(t, columns, 2)
	assert.Equal(t, "CPA", columns[0].Abbrev)
	assert.Equal(t, "CPA2", columns[1].Abbrev)
}
