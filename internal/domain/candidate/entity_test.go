package candidate

import (
	"testing"
	"time"
)

func TestWorkHistoryYears(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("closed record rounds to one decimal", func(t *testing.T) {
		end := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
		r := WorkHistoryRecord{
			StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   &end,
		}
		if got := r.Years(now); got != 3.5 {
			t.Fatalf("Years = %v, want 3.5", got)
		}
	})

	t.Run("open record counts up to now", func(t *testing.T) {
		r := WorkHistoryRecord{StartDate: now.AddDate(-2, 0, 0)}
		if got := r.Years(now); got != 2.0 {
			t.Fatalf("Years = %v, want 2.0", got)
		}
	})

	t.Run("end before start contributes nothing", func(t *testing.T) {
		end := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
		r := WorkHistoryRecord{
			StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   &end,
		}
		if got := r.Years(now); got != 0 {
			t.Fatalf("Years = %v, want 0", got)
		}
	})
}

func TestEducationLevelOrdinal(t *testing.T) {
	if LevelCertification.Ordinal() != LevelAssociates.Ordinal() {
		t.Fatal("certification should rank equal to associates")
	}
	order := []EducationLevel{LevelHighSchool, LevelAssociates, LevelBachelors, LevelMasters, LevelDoctorate}
	for i := 1; i < len(order); i++ {
		if order[i-1].Ordinal() >= order[i].Ordinal() {
			t.Fatalf("%s should rank below %s", order[i-1], order[i])
		}
	}
}
