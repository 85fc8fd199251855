package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// StudentTally is one student's status counts over a report range.
type StudentTally struct {
	StudentID uint `json:"studentId"`
	Present   int  `json:"present"`
	Absent    int  `json:"absent"`
	Late      int  `json:"late"`
	Leave     int  `json:"leave"`
}

// Report is the per-class attendance summary dashboards consume. TotalDays
// counts distinct days that actually have records, not the calendar span.
type Report struct {
	TotalDays int            `json:"totalDays"`
	Students  []StudentTally `json:"students"`
}

// Reporter aggregates attendance tallies from the record store.
type Reporter struct {
	Records RecordStore
}

// Build tallies every record for the class/section in [from, to], grouped by
// student. Students with no records in range are omitted, not zero-filled.
func (r *Reporter) Build(ctx context.Context, classID, sectionID uint, from, to string) (*Report, error) {
	if _, err := time.Parse(DateLayout, from); err != nil {
		return nil, ValidationError("INVALID_DATE")
	}
	if _, err := time.Parse(DateLayout, to); err != nil {
		return nil, ValidationError("INVALID_DATE")
	}
	if from > to {
		return nil, ValidationError("INVALID_RANGE")
	}

	rows, err := r.Records.RecordsInRange(ctx, classID, sectionID, from, to)
	if err != nil {
		return nil, err
	}

	days := make(map[string]struct{})
	tallies := make(map[uint]*StudentTally)
	for _, rec := range rows {
		days[rec.Date] = struct{}{}
		t := tallies[rec.StudentID]
		if t == nil {
			t = &StudentTally{StudentID: rec.StudentID}
			tallies[rec.StudentID] = t
		}
		switch rec.Status {
		case models.StatusPresent:
			t.Present++
		case models.StatusAbsent:
			t.Absent++
		case models.StatusLate:
			t.Late++
		case models.StatusLeave:
			t.Leave++
		}
	}

	students := make([]StudentTally, 0, len(tallies))
	for _, t := range tallies {
		students = append(students, *t)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentID < students[j].StudentID })

	return &Report{TotalDays: len(days), Students: students}, nil
}
