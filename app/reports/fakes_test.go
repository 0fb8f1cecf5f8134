package reports

import (
	"context"
	"time"

	"greenhill-schools/app/models"
)

// fakeStore backs every repository interface with in-memory maps so the
// engine can be exercised without a database.
type fakeStore struct {
	students  map[string]*models.Student
	classes   map[string]*models.Class
	semesters map[string]*models.Semester

	classSubjects map[string][]*models.Subject           // classID|semesterID
	specials      map[string][]*models.SpecialEnrollment // studentID|semesterID
	averages      map[string][]*models.AssessmentRecord  // studentID|subjectID|classID
	counts        map[string][2]int                      // studentID|subjectID|classID

	studentErrs map[string]error         // induced Get/average failures per student
	fetchDelays map[string]time.Duration // slow StudentAverages per student
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students:      make(map[string]*models.Student),
		classes:       make(map[string]*models.Class),
		semesters:     make(map[string]*models.Semester),
		classSubjects: make(map[string][]*models.Subject),
		specials:      make(map[string][]*models.SpecialEnrollment),
		averages:      make(map[string][]*models.AssessmentRecord),
		counts:        make(map[string][2]int),
		studentErrs:   make(map[string]error),
		fetchDelays:   make(map[string]time.Duration),
	}
}

func (f *fakeStore) addClass(id, name, code string) {
	f.classes[id] = &models.Class{ID: id, Name: name, Code: code, IsActive: true}
}

func (f *fakeStore) addSemester(id, name string) {
	f.semesters[id] = &models.Semester{ID: id, Name: name, IsActive: true}
}

func (f *fakeStore) addStudent(id, first, last, classID string) {
	f.students[id] = &models.Student{
		ID: id, StudentID: "ADM-" + id, FirstName: first, LastName: last,
		ClassID: &classID, IsActive: true,
	}
}

func (f *fakeStore) addClassSubject(classID, semesterID string, subject *models.Subject) {
	key := classID + "|" + semesterID
	f.classSubjects[key] = append(f.classSubjects[key], subject)
}

func (f *fakeStore) addSpecial(studentID, semesterID string, se *models.SpecialEnrollment) {
	key := studentID + "|" + semesterID
	f.specials[key] = append(f.specials[key], se)
}

func (f *fakeStore) setAverages(studentID, subjectID, classID string, records ...*models.AssessmentRecord) {
	key := studentID + "|" + subjectID + "|" + classID
	f.averages[key] = records

	total, completed := 0, 0
	for _, rec := range records {
		total += rec.TotalAssessments
		completed += rec.CompletedAssessments
	}
	f.counts[key] = [2]int{total, completed}
}

// StudentRepository

func (f *fakeStore) Get(ctx context.Context, studentID string) (*models.Student, error) {
	if err := f.studentErrs[studentID]; err != nil {
		return nil, err
	}
	return f.students[studentID], nil
}

func (f *fakeStore) ListByClass(ctx context.Context, classID string) ([]*models.Student, error) {
	var students []*models.Student
	for _, s := range f.students {
		if s.ClassID != nil && *s.ClassID == classID {
			students = append(students, s)
		}
	}
	return students, nil
}

// Class and semester lookups live on wrapper types since Get is already
// taken by StudentRepository.

type fakeClassRepo struct{ *fakeStore }

func (f fakeClassRepo) Get(ctx context.Context, classID string) (*models.Class, error) {
	return f.classes[classID], nil
}

type fakeSemesterRepo struct{ *fakeStore }

func (f fakeSemesterRepo) Get(ctx context.Context, semesterID string) (*models.Semester, error) {
	return f.semesters[semesterID], nil
}

// EnrollmentRepository

func (f *fakeStore) ClassSubjects(ctx context.Context, classID, semesterID string) ([]*models.Subject, error) {
	return f.classSubjects[classID+"|"+semesterID], nil
}

func (f *fakeStore) SpecialEnrollments(ctx context.Context, studentID, semesterID string) ([]*models.SpecialEnrollment, error) {
	return f.specials[studentID+"|"+semesterID], nil
}

// AssessmentRepository

func (f *fakeStore) TypesFor(ctx context.Context, subjectID, classID, semesterID string) ([]*models.AssessmentType, error) {
	return nil, nil
}

func (f *fakeStore) StudentAverages(ctx context.Context, studentID, subjectID, classID, semesterID string) ([]*models.AssessmentRecord, error) {
	if delay := f.fetchDelays[studentID]; delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.studentErrs[studentID]; err != nil {
		return nil, err
	}
	return f.averages[studentID+"|"+subjectID+"|"+classID], nil
}

func (f *fakeStore) Counts(ctx context.Context, studentID, subjectID, classID, semesterID string) (int, int, error) {
	c := f.counts[studentID+"|"+subjectID+"|"+classID]
	return c[0], c[1], nil
}

// newTestService wires a Service entirely onto the fake store.
func newTestService(f *fakeStore, opts ...Option) *Service {
	return NewService(f, fakeClassRepo{f}, fakeSemesterRepo{f}, f, f, opts...)
}

func fptr(v float64) *float64 { return &v }

func record(typeName string, weight float64, avg *float64) *models.AssessmentRecord {
	rec := &models.AssessmentRecord{
		TypeName:         typeName,
		Weight:           weight,
		Average:          avg,
		TotalAssessments: 2,
	}
	if avg != nil {
		rec.CompletedAssessments = 2
	}
	return rec
}
