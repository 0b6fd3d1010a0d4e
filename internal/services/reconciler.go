package services

import (
	"time"

	"github.com/cyra-app/cyra/internal/models"
)

// PeriodChange is the result of applying one event to a month record: the
// updated record plus the exact field mask a partial write may touch.
type PeriodChange struct {
	Record models.PeriodRecord
	Mask   []string
}

// ApplyStart sets the month's start date and upserts the note for that
// day (empty text allowed).
func ApplyStart(record models.PeriodRecord, day time.Time, note string, location *time.Location) PeriodChange {
	updated := record
	normalized := DateAtLocation(day, location)
	updated.StartDate = &normalized

	notes := record.CloneNotes()
	notes[normalized.Format(isoDate)] = note
	updated.Notes = notes

	return PeriodChange{
		Record: updated,
		Mask:   []string{models.FieldStartDate, models.FieldNotes},
	}
}

// ApplyEnd sets the month's end date and upserts the note. When the
// record already carries a start date the derived period length is
// written as well.
func ApplyEnd(record models.PeriodRecord, day time.Time, note string, location *time.Location) PeriodChange {
	updated := record
	normalized := DateAtLocation(day, location)
	updated.EndDate = &normalized

	notes := record.CloneNotes()
	notes[normalized.Format(isoDate)] = note
	updated.Notes = notes

	mask := []string{models.FieldEndDate, models.FieldNotes}
	if record.StartDate != nil {
		length := PeriodLengthDays(*record.StartDate, normalized)
		updated.PeriodLength = &length
		mask = append(mask, models.FieldPeriodLength)
	}

	return PeriodChange{Record: updated, Mask: mask}
}

// ApplyNote upserts a note without touching any date field. A note cannot
// be attached without text.
func ApplyNote(record models.PeriodRecord, day time.Time, note string, location *time.Location) (PeriodChange, error) {
	if note == "" {
		return PeriodChange{}, ValidationFault("note text is required")
	}

	updated := record
	notes := record.CloneNotes()
	notes[ISODate(day, location)] = note
	updated.Notes = notes

	return PeriodChange{
		Record: updated,
		Mask:   []string{models.FieldNotes},
	}, nil
}

// RemoveNote deletes the single note for the given day. The second return
// reports whether the note existed; removing an absent note is a no-op.
func RemoveNote(record models.PeriodRecord, day time.Time, location *time.Location) (PeriodChange, bool) {
	key := ISODate(day, location)
	if _, ok := record.Notes[key]; !ok {
		return PeriodChange{Record: record}, false
	}

	updated := record
	notes := record.CloneNotes()
	delete(notes, key)
	updated.Notes = notes

	return PeriodChange{
		Record: updated,
		Mask:   []string{models.FieldNotes},
	}, true
}

// RemoveEvent clears the month's notes and period length. The boundary
// dates are nulled individually, and only on calendar-date equality with
// the removed day: removing the start day clears both dates, removing the
// end day clears only the end, removing a mid-period noted day leaves
// both untouched.
func RemoveEvent(record models.PeriodRecord, day time.Time, location *time.Location) PeriodChange {
	updated := record
	updated.Notes = map[string]string{}
	updated.PeriodLength = nil
	mask := []string{models.FieldNotes, models.FieldPeriodLength}

	if record.StartDate != nil && SameCalendarDate(*record.StartDate, day, location) {
		updated.StartDate = nil
		updated.EndDate = nil
		mask = append(mask, models.FieldStartDate, models.FieldEndDate)
		return PeriodChange{Record: updated, Mask: mask}
	}

	if record.EndDate != nil && SameCalendarDate(*record.EndDate, day, location) {
		updated.EndDate = nil
		mask = append(mask, models.FieldEndDate)
	}

	return PeriodChange{Record: updated, Mask: mask}
}
