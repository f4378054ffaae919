// Package export projects domain records into the two external
// representations: flat tabular rows (CSV) and Apple Health XML.
package export

import (
	"strconv"
	"time"

	"github.com/zeppex/zeppex/internal/domain"
)

// Row is one flattened data point for spreadsheet consumption. Field order
// here is the CSV column order.
type Row struct {
	Date   string
	Type   string
	Time   string
	Minute string
	Value  string
	Unit   string
}

// rowHeader matches the Row field order.
var rowHeader = []string{"date", "type", "time", "minute", "value", "unit"}

// HeartRateRows flattens one day's heart rate readings.
func HeartRateRows(date string, readings []domain.HeartRateSample) []Row {
	rows := make([]Row, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, Row{
			Date:   date,
			Type:   "heart_rate",
			Time:   r.Time,
			Minute: strconv.Itoa(r.Minute),
			Value:  strconv.Itoa(r.BPM),
			Unit:   "bpm",
		})
	}
	return rows
}

// StepsRows flattens one day's step totals into steps/distance/calories rows.
func StepsRows(steps *domain.StepsDayRecord) []Row {
	if steps == nil {
		return nil
	}
	return []Row{
		{Date: steps.Date, Type: "steps", Value: strconv.Itoa(steps.TotalSteps), Unit: "steps"},
		{Date: steps.Date, Type: "distance", Value: strconv.Itoa(steps.DistanceMeters), Unit: "meters"},
		{Date: steps.Date, Type: "calories", Value: strconv.Itoa(steps.Calories), Unit: "kcal"},
	}
}

// SleepRows flattens one sleep session's summary scalars.
func SleepRows(sleep *domain.SleepSession) []Row {
	if sleep == nil {
		return nil
	}
	return []Row{
		{Date: sleep.Date, Type: "sleep_score", Value: strconv.Itoa(sleep.SleepScore), Unit: "score"},
		{Date: sleep.Date, Type: "resting_hr", Value: strconv.Itoa(sleep.RestingHR), Unit: "bpm"},
		{Date: sleep.Date, Type: "deep_sleep", Value: strconv.Itoa(sleep.DeepMinutes), Unit: "minutes"},
		{Date: sleep.Date, Type: "light_sleep", Value: strconv.Itoa(sleep.LightMinutes), Unit: "minutes"},
	}
}

// StressRows flattens 5-minute stress readings across day records. Reading
// timestamps resolve to date and time-of-day in loc.
func StressRows(records []domain.StressDayRecord, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}
	var rows []Row
	for _, rec := range records {
		for _, r := range rec.Readings {
			ts := time.UnixMilli(r.Time).In(loc)
			rows = append(rows, Row{
				Date:  ts.Format("2006-01-02"),
				Type:  "stress",
				Time:  ts.Format("15:04"),
				Value: strconv.Itoa(r.Value),
				Unit:  "stress_level",
			})
		}
	}
	return rows
}
