package attendance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/storage/inmem"
)

func seedRecord(t *testing.T, store *inmem.Store, studentID uint, date, status string) {
	t.Helper()
	require.NoError(t, store.UpsertRecord(context.Background(), &models.AttendanceRecord{
		StudentID: studentID, Date: date, ClassID: 10, SectionID: 2,
		Status: status, MarkedBy: 1,
	}))
}

func TestReporterBuild(t *testing.T) {
	store := inmem.New()
	rep := &attendance.Reporter{Records: store}
	ctx := context.Background()

	seedRecord(t, store, 5, "2026-03-02", models.StatusPresent)
	seedRecord(t, store, 5, "2026-03-03", models.StatusLate)
	seedRecord(t, store, 5, "2026-03-04", models.StatusPresent)
	seedRecord(t, store, 6, "2026-03-02", models.StatusAbsent)
	seedRecord(t, store, 6, "2026-03-03", models.StatusLeave)
	// Out of range, must not count.
	seedRecord(t, store, 5, "2026-02-27", models.StatusAbsent)

	report, err := rep.Build(ctx, 10, 2, "2026-03-01", "2026-03-31")
	require.NoError(t, err)

	// Three distinct days carry records in range.
	assert.Equal(t, 3, report.TotalDays)
	require.Len(t, report.Students, 2)

	assert.Equal(t, attendance.StudentTally{StudentID: 5, Present: 2, Late: 1}, report.Students[0])
	assert.Equal(t, attendance.StudentTally{StudentID: 6, Absent: 1, Leave: 1}, report.Students[1])
}

func TestReporterOmitsStudentsWithoutRecords(t *testing.T) {
	store := inmem.New()
	store.AddStudent(9, "No Records Yet")
	rep := &attendance.Reporter{Records: store}

	seedRecord(t, store, 5, "2026-03-02", models.StatusPresent)

	report, err := rep.Build(context.Background(), 10, 2, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, report.Students, 1)
	assert.Equal(t, uint(5), report.Students[0].StudentID)
}

func TestReporterEmptyRange(t *testing.T) {
	rep := &attendance.Reporter{Records: inmem.New()}

	report, err := rep.Build(context.Background(), 10, 2, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalDays)
	assert.Empty(t, report.Students)
}

func TestReporterValidation(t *testing.T) {
	rep := &attendance.Reporter{Records: inmem.New()}
	ctx := context.Background()

	_, err := rep.Build(ctx, 10, 2, "01-03-2026", "2026-03-31")
	assert.Equal(t, attendance.ValidationError("INVALID_DATE"), err)

	_, err = rep.Build(ctx, 10, 2, "2026-03-01", "31/03/2026")
	assert.Equal(t, attendance.ValidationError("INVALID_DATE"), err)

	_, err = rep.Build(ctx, 10, 2, "2026-04-01", "2026-03-01")
	assert.Equal(t, attendance.ValidationError("INVALID_RANGE"), err)
}
