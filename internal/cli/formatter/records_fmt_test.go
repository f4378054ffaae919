package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zeppex/zeppex/internal/domain"
)

func TestMinutes(t *testing.T) {
	assert.Equal(t, "45m", Minutes(45))
	assert.Equal(t, "1h 0m", Minutes(60))
	assert.Equal(t, "7h 30m", Minutes(450))
}

func TestHeartRateSummary(t *testing.T) {
	out := HeartRateSummary("2026-02-06", []domain.HeartRateSample{
		{Minute: 0, Time: "00:00", BPM: 58},
		{Minute: 1, Time: "00:01", BPM: 72},
		{Minute: 2, Time: "00:02", BPM: 62},
	})

	assert.Contains(t, out, "HEART RATE 2026-02-06")
	assert.Contains(t, out, "58 bpm")
	assert.Contains(t, out, "64 bpm") // (58+72+62)/3
	assert.Contains(t, out, "72 bpm")
}

func TestHeartRateSummary_NoReadings(t *testing.T) {
	out := HeartRateSummary("2026-02-06", nil)
	assert.Contains(t, out, "no readings")
}

func TestSteps_GoalReached(t *testing.T) {
	out := Steps(&domain.StepsDayRecord{
		Date: "2026-02-06", TotalSteps: 8200, Goal: 8000,
		DistanceMeters: 6100, Calories: 320,
	})

	assert.Contains(t, out, "8200 / 8000 goal")
	assert.Contains(t, out, "6.1 km")
	assert.Contains(t, out, "320 kcal")
}

func TestSleep(t *testing.T) {
	tz := time.FixedZone("UTC-6", -6*3600)
	out := Sleep(&domain.SleepSession{
		Date:            "2026-02-06",
		Start:           time.Date(2026, 2, 5, 23, 30, 0, 0, tz),
		End:             time.Date(2026, 2, 6, 7, 0, 0, 0, tz),
		DurationMinutes: 450,
		SleepScore:      82,
		RestingHR:       52,
		DeepMinutes:     95,
		LightMinutes:    280,
		Stages: []domain.SleepStageSegment{
			{StartMinute: 1410, EndMinute: 1440, Stage: domain.StageLight},
			{StartMinute: 1440, EndMinute: 1470, Stage: domain.StageDeep},
		},
	})

	assert.Contains(t, out, "SLEEP 2026-02-06")
	assert.Contains(t, out, "7h 30m")
	assert.Contains(t, out, "82")
	assert.Contains(t, out, "52 bpm")
	assert.Contains(t, out, "light 30m")
	assert.Contains(t, out, "deep 30m")
}

func TestStress(t *testing.T) {
	out := Stress(domain.StressDayRecord{
		Timestamp: time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC).UnixMilli(),
		AvgStress: 31, MinStress: 8, MaxStress: 77,
		ZonePercentages: domain.StressZonePercentages{Relaxed: 30, Normal: 50, Medium: 15, High: 5},
	}, time.UTC)

	assert.Contains(t, out, "STRESS 2026-02-06")
	assert.Contains(t, out, "8 – 77")
	assert.Contains(t, out, "relaxed 30%")
	assert.Contains(t, out, "high 5%")
}

func TestSportLoad_WeeklyBands(t *testing.T) {
	optimal := SportLoad(domain.SportLoadRecord{
		Date: "2026-02-06", DailyLoad: 120, WeeklyLoad: 450,
		OptimalMin: 400, OptimalMax: 600, Overreaching: 800,
	})
	assert.Contains(t, optimal, "(optimal)")

	over := SportLoad(domain.SportLoadRecord{
		Date: "2026-02-06", DailyLoad: 300, WeeklyLoad: 900,
		OptimalMin: 400, OptimalMax: 600, Overreaching: 800,
	})
	assert.Contains(t, over, "(overreaching)")
}

func TestTrainingLoad_WithPlan(t *testing.T) {
	out := TrainingLoad(domain.TrainingLoadRecord{
		Timestamp:  time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC).UnixMilli(),
		TotalScore: 45.5, TargetScore: 60, CompletionPercent: 76,
		ATL: 42.1, CTL: 38.7, TSB: -3.4,
		ExercisePlan: &domain.ExercisePlan{HRLower: 120, HRUpper: 150, DurationMinutes: 40},
	}, time.UTC)

	assert.Contains(t, out, "TRAINING LOAD 2026-02-06")
	assert.Contains(t, out, "45.5")
	assert.Contains(t, out, "120–150 bpm for 40m")
}
