package reports

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// GenerateClassReports builds a report card for every student in a class
// using a bounded worker pool. One student's failure, timeout included,
// becomes an error entry and never aborts the batch; cancelling the whole
// batch still returns the documents already completed plus error entries
// for the rest.
//
// Batch-level failures are limited to an unknown class or semester, a
// class with zero students, and every student failing (ErrAllFailed).
func (s *Service) GenerateClassReports(ctx context.Context, classID, semesterID string) (*BatchReport, error) {
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
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("class %s: %w", classID, ErrNoStudents)
	}

	sort.SliceStable(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})

	// Each worker writes only its own slots, so the batch stays
	// deterministic without a lock around the output.
	type outcome struct {
		doc *ReportCardDocument
		err error
	}
	outcomes := make([]outcome, len(students))
	jobs := make(chan int)

	workers := s.bulkWorkers
	if workers > len(students) {
		workers = len(students)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc, err := s.buildOne(ctx, students[i].ID, semesterID)
				outcomes[i] = outcome{doc: doc, err: err}
			}
		}()
	}

dispatch:
	for i := range students {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	batch := &BatchReport{
		BatchID:   uuid.NewString(),
		Class:     class,
		Semester:  semester,
		Documents: []*ReportCardDocument{},
		Errors:    []BatchError{},
	}

	for i, out := range outcomes {
		student := students[i]
		switch {
		case out.doc != nil:
			batch.Documents = append(batch.Documents, out.doc)
		case out.err != nil:
			batch.Errors = append(batch.Errors, BatchError{
				StudentID:   student.ID,
				StudentName: student.FullName(),
				Reason:      out.err.Error(),
			})
		default:
			// Never dispatched: the batch was cancelled first.
			batch.Errors = append(batch.Errors, BatchError{
				StudentID:   student.ID,
				StudentName: student.FullName(),
				Reason:      "batch cancelled before processing",
			})
		}
	}

	if len(batch.Documents) == 0 {
		return batch, fmt.Errorf("class %s: %w", classID, ErrAllFailed)
	}
	return batch, nil
}

// buildOne runs the full pipeline for a single student under a per-student
// timeout, so one stuck fetch cannot stall the whole batch.
func (s *Service) buildOne(ctx context.Context, studentID, semesterID string) (*ReportCardDocument, error) {
	studentCtx, cancel := context.WithTimeout(ctx, s.studentTimeout)
	defer cancel()

	doc, err := s.BuildReportCard(studentCtx, studentID, semesterID)
	if err != nil {
		return nil, err
	}
	if len(doc.Subjects) == 0 {
		return nil, fmt.Errorf("no subjects with assessments this semester")
	}
	return doc, nil
}
