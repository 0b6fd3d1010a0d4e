package services

import (
	"sort"
	"testing"
	"time"

	"github.com/cyra-app/cyra/internal/models"
)

func maskEquals(t *testing.T, got []string, want ...string) {
	t.Helper()
	gotSorted := append([]string(nil), got...)
	wantSorted := append([]string(nil), want...)
	sort.Strings(gotSorted)
	sort.Strings(wantSorted)
	if len(gotSorted) != len(wantSorted) {
		t.Fatalf("expected mask %v, got %v", want, got)
	}
	for index := range gotSorted {
		if gotSorted[index] != wantSorted[index] {
			t.Fatalf("expected mask %v, got %v", want, got)
		}
	}
}

func TestApplyStart(t *testing.T) {
	t.Parallel()

	record := models.EmptyPeriodRecord()
	change := ApplyStart(record, mustParseDay(t, "2024-03-01"), "cramps", time.UTC)

	if change.Record.StartDate == nil || change.Record.StartDate.Format(isoDate) != "2024-03-01" {
		t.Fatalf("expected start date 2024-03-01, got %v", change.Record.StartDate)
	}
	if got := change.Record.Notes["2024-03-01"]; got != "cramps" {
		t.Fatalf("expected note %q, got %q", "cramps", got)
	}
	maskEquals(t, change.Mask, models.FieldStartDate, models.FieldNotes)

	if len(record.Notes) != 0 {
		t.Fatal("expected the input record to stay untouched")
	}
}

func TestApplyEnd(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-03-01")

	t.Run("with start present writes period length", func(t *testing.T) {
		record := models.EmptyPeriodRecord()
		record.StartDate = &start

		change := ApplyEnd(record, mustParseDay(t, "2024-03-05"), "", time.UTC)

		if change.Record.EndDate == nil || change.Record.EndDate.Format(isoDate) != "2024-03-05" {
			t.Fatalf("expected end date 2024-03-05, got %v", change.Record.EndDate)
		}
		if change.Record.PeriodLength == nil || *change.Record.PeriodLength != 5 {
			t.Fatalf("expected period length 5, got %v", change.Record.PeriodLength)
		}
		maskEquals(t, change.Mask, models.FieldEndDate, models.FieldNotes, models.FieldPeriodLength)
	})

	t.Run("without start skips period length", func(t *testing.T) {
		change := ApplyEnd(models.EmptyPeriodRecord(), mustParseDay(t, "2024-03-05"), "", time.UTC)

		if change.Record.PeriodLength != nil {
			t.Fatalf("expected no period length, got %v", *change.Record.PeriodLength)
		}
		maskEquals(t, change.Mask, models.FieldEndDate, models.FieldNotes)
	})
}

func TestApplyNote(t *testing.T) {
	t.Parallel()

	record := models.EmptyPeriodRecord()
	change, err := ApplyNote(record, mustParseDay(t, "2024-03-03"), "cramps", time.UTC)
	if err != nil {
		t.Fatalf("expected note to apply, got %v", err)
	}
	if got := change.Record.Notes["2024-03-03"]; got != "cramps" {
		t.Fatalf("expected note %q, got %q", "cramps", got)
	}
	maskEquals(t, change.Mask, models.FieldNotes)

	if _, err := ApplyNote(record, mustParseDay(t, "2024-03-03"), "", time.UTC); err == nil {
		t.Fatal("expected empty note text to be rejected")
	} else if KindOf(err) != FaultValidation {
		t.Fatalf("expected validation fault, got %v", KindOf(err))
	}
}

func TestRemoveNote(t *testing.T) {
	t.Parallel()

	record := models.EmptyPeriodRecord()
	record.Notes["2024-03-03"] = "cramps"

	change, removed := RemoveNote(record, mustParseDay(t, "2024-03-03"), time.UTC)
	if !removed {
		t.Fatal("expected existing note to be removed")
	}
	if _, ok := change.Record.Notes["2024-03-03"]; ok {
		t.Fatal("expected note to be gone from the updated record")
	}
	maskEquals(t, change.Mask, models.FieldNotes)

	_, removed = RemoveNote(record, mustParseDay(t, "2024-03-09"), time.UTC)
	if removed {
		t.Fatal("expected removing an absent note to be a no-op")
	}
}

func TestRemoveEvent(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-03-01")
	end := mustParseDay(t, "2024-03-05")
	length := 5

	buildRecord := func() models.PeriodRecord {
		record := models.EmptyPeriodRecord()
		record.StartDate = &start
		record.EndDate = &end
		record.PeriodLength = &length
		record.Notes = map[string]string{"2024-03-01": "start", "2024-03-03": "cramps"}
		return record
	}

	t.Run("removing the start day clears both dates", func(t *testing.T) {
		change := RemoveEvent(buildRecord(), mustParseDay(t, "2024-03-01"), time.UTC)

		if change.Record.StartDate != nil || change.Record.EndDate != nil {
			t.Fatalf("expected both dates cleared, got start=%v end=%v", change.Record.StartDate, change.Record.EndDate)
		}
		maskEquals(t, change.Mask, models.FieldNotes, models.FieldPeriodLength, models.FieldStartDate, models.FieldEndDate)
	})

	t.Run("removing the end day clears only the end", func(t *testing.T) {
		change := RemoveEvent(buildRecord(), mustParseDay(t, "2024-03-05"), time.UTC)

		if change.Record.StartDate == nil {
			t.Fatal("expected start date to survive")
		}
		if change.Record.EndDate != nil {
			t.Fatalf("expected end date cleared, got %v", change.Record.EndDate)
		}
		maskEquals(t, change.Mask, models.FieldNotes, models.FieldPeriodLength, models.FieldEndDate)
	})

	t.Run("removing a mid-period day leaves dates alone", func(t *testing.T) {
		change := RemoveEvent(buildRecord(), mustParseDay(t, "2024-03-03"), time.UTC)

		if change.Record.StartDate == nil || change.Record.EndDate == nil {
			t.Fatal("expected both dates to survive")
		}
		if len(change.Record.Notes) != 0 {
			t.Fatalf("expected all notes cleared, got %v", change.Record.Notes)
		}
		if change.Record.PeriodLength != nil {
			t.Fatal("expected period length cleared")
		}
		maskEquals(t, change.Mask, models.FieldNotes, models.FieldPeriodLength)
	})
}
