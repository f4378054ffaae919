package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeppex/zeppex/internal/domain"
)

func TestWriteCSV_EmptyWritesNoDataMarker(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "# No data\n", buf.String())
	assert.NotContains(t, buf.String(), "date,type")
}

func TestWriteCSV_HeaderMatchesRowFields(t *testing.T) {
	rows := HeartRateRows("2026-02-06", []domain.HeartRateSample{
		{Minute: 3, Time: "00:03", BPM: 72},
		{Minute: 754, Time: "12:34", BPM: 88},
	})

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,type,time,minute,value,unit", lines[0])
	assert.Equal(t, "2026-02-06,heart_rate,00:03,3,72,bpm", lines[1])
	assert.Equal(t, "2026-02-06,heart_rate,12:34,754,88,bpm", lines[2])
}

func TestStepsRows(t *testing.T) {
	rows := StepsRows(&domain.StepsDayRecord{
		Date:           "2026-02-06",
		TotalSteps:     6548,
		DistanceMeters: 4644,
		Calories:       1247,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, Row{Date: "2026-02-06", Type: "steps", Value: "6548", Unit: "steps"}, rows[0])
	assert.Equal(t, Row{Date: "2026-02-06", Type: "distance", Value: "4644", Unit: "meters"}, rows[1])
	assert.Equal(t, Row{Date: "2026-02-06", Type: "calories", Value: "1247", Unit: "kcal"}, rows[2])

	assert.Nil(t, StepsRows(nil))
}

func TestSleepRows(t *testing.T) {
	rows := SleepRows(&domain.SleepSession{
		Date:         "2026-02-06",
		SleepScore:   77,
		RestingHR:    57,
		DeepMinutes:  127,
		LightMinutes: 385,
	})

	require.Len(t, rows, 4)
	assert.Equal(t, "sleep_score", rows[0].Type)
	assert.Equal(t, "77", rows[0].Value)
	assert.Equal(t, "resting_hr", rows[1].Type)
	assert.Equal(t, "deep_sleep", rows[2].Type)
	assert.Equal(t, "light_sleep", rows[3].Type)

	assert.Nil(t, SleepRows(nil))
}

func TestStressRows(t *testing.T) {
	ts := time.Date(2026, 2, 6, 14, 30, 0, 0, time.UTC).UnixMilli()
	records := []domain.StressDayRecord{
		{Readings: []domain.StressReading{{Time: ts, Value: 47}, {Time: ts + 300000, Value: 52}}},
	}

	rows := StressRows(records, time.UTC)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-02-06", rows[0].Date)
	assert.Equal(t, "14:30", rows[0].Time)
	assert.Equal(t, "47", rows[0].Value)
	assert.Equal(t, "stress_level", rows[0].Unit)
	assert.Equal(t, "14:35", rows[1].Time)
}
