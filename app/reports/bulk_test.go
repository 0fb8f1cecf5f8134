package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhill-schools/app/models"
)

func bulkFixture() *fakeStore {
	f := newFakeStore()
	f.addClass("c1", "Primary Five", "P5")
	f.addSemester("sem1", "Term 1")
	f.addClassSubject("c1", "sem1", &models.Subject{ID: "sub-math", Name: "Mathematics"})

	for _, s := range []struct{ id, first, last string }{
		{"st1", "Amina", "Kato"},
		{"st2", "Brian", "Okello"},
		{"st3", "Cissy", "Nabirye"},
		{"st4", "David", "Ssali"},
	} {
		f.addStudent(s.id, s.first, s.last, "c1")
		f.setAverages(s.id, "sub-math", "c1", record("Exam", 100, fptr(75)))
	}
	return f
}

func TestGenerateClassReportsAllSucceed(t *testing.T) {
	svc := newTestService(bulkFixture())

	batch, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	require.NoError(t, err)

	assert.Equal(t, 4, batch.Succeeded())
	assert.Equal(t, 0, batch.Failed())
	assert.NotEmpty(t, batch.BatchID)

	// Documents come back in last/first name order.
	assert.Equal(t, "Kato", batch.Documents[0].Student.LastName)
	assert.Equal(t, "Nabirye", batch.Documents[1].Student.LastName)
	assert.Equal(t, "Okello", batch.Documents[2].Student.LastName)
	assert.Equal(t, "Ssali", batch.Documents[3].Student.LastName)
}

func TestGenerateClassReportsIsolatesFailures(t *testing.T) {
	f := bulkFixture()
	f.studentErrs["st3"] = errors.New("connection reset")
	svc := newTestService(f)

	batch, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	require.NoError(t, err, "one student's failure must not abort the batch")

	assert.Equal(t, 3, batch.Succeeded())
	require.Equal(t, 1, batch.Failed())
	assert.Equal(t, "st3", batch.Errors[0].StudentID)
	assert.Equal(t, "Nabirye Cissy", batch.Errors[0].StudentName)
	assert.Contains(t, batch.Errors[0].Reason, "connection reset")

	assert.Equal(t, 4, batch.Succeeded()+batch.Failed(),
		"every student must land in documents or errors")
}

func TestGenerateClassReportsEmptySubjectSetIsFailure(t *testing.T) {
	// No subject in the class has assessments; st1 still scores through a
	// special enrollment, st2 resolves to nothing and becomes an error.
	f := newFakeStore()
	f.addClass("c1", "Primary Five", "P5")
	f.addClass("c2", "Primary Six", "P6")
	f.addSemester("sem1", "Term 1")
	f.addStudent("st1", "Amina", "Kato", "c1")
	f.addStudent("st2", "Brian", "Okello", "c1")
	f.addSpecial("st1", "sem1", &models.SpecialEnrollment{
		ID: "se1", StudentID: "st1", SubjectID: "sub-ksw", ClassID: "c2",
		SemesterID: "sem1", IsActive: true,
		Subject: &models.Subject{ID: "sub-ksw", Name: "Kiswahili"},
	})
	f.setAverages("st1", "sub-ksw", "c2", record("Exam", 100, fptr(68)))
	svc := newTestService(f)

	batch, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Succeeded())
	require.Equal(t, 1, batch.Failed())
	assert.Equal(t, "st2", batch.Errors[0].StudentID)
	assert.Contains(t, batch.Errors[0].Reason, "no subjects")
}

func TestGenerateClassReportsAllFailed(t *testing.T) {
	f := bulkFixture()
	for _, id := range []string{"st1", "st2", "st3", "st4"} {
		f.studentErrs[id] = errors.New("boom")
	}
	svc := newTestService(f)

	batch, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	assert.ErrorIs(t, err, ErrAllFailed)
	require.NotNil(t, batch, "the batch with its error entries is still returned")
	assert.Equal(t, 0, batch.Succeeded())
	assert.Equal(t, 4, batch.Failed())
}

func TestGenerateClassReportsNoStudents(t *testing.T) {
	f := newFakeStore()
	f.addClass("c1", "Primary Five", "P5")
	f.addSemester("sem1", "Term 1")
	svc := newTestService(f)

	_, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	assert.ErrorIs(t, err, ErrNoStudents)
}

func TestGenerateClassReportsUnknownClass(t *testing.T) {
	svc := newTestService(bulkFixture())

	_, err := svc.GenerateClassReports(context.Background(), "missing", "sem1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateClassReportsStudentTimeout(t *testing.T) {
	f := bulkFixture()
	f.fetchDelays["st2"] = 200 * time.Millisecond
	svc := newTestService(f, WithStudentTimeout(20*time.Millisecond))

	batch, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	require.NoError(t, err, "a stuck student must not stall the batch")

	assert.Equal(t, 3, batch.Succeeded())
	require.Equal(t, 1, batch.Failed())
	assert.Equal(t, "st2", batch.Errors[0].StudentID)
}

func TestGenerateClassReportsBatchCancellation(t *testing.T) {
	f := bulkFixture()
	for _, id := range []string{"st1", "st2", "st3", "st4"} {
		f.fetchDelays[id] = time.Second
	}
	svc := newTestService(f, WithBulkWorkers(2))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	batch, err := svc.GenerateClassReports(ctx, "c1", "sem1")
	assert.ErrorIs(t, err, ErrAllFailed)
	require.NotNil(t, batch)
	assert.Equal(t, 4, batch.Succeeded()+batch.Failed(),
		"cancellation still accounts for every student")
}

func TestGenerateClassReportsDeterministic(t *testing.T) {
	svc := newTestService(bulkFixture())

	first, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	require.NoError(t, err)
	second, err := svc.GenerateClassReports(context.Background(), "c1", "sem1")
	require.NoError(t, err)

	// Identical source data yields identical documents; only the batch id
	// differs between runs.
	require.Equal(t, len(first.Documents), len(second.Documents))
	for i := range first.Documents {
		assert.Equal(t, first.Documents[i], second.Documents[i])
	}
}
