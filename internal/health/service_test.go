package health

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeppex/zeppex/internal/domain"
	"github.com/zeppex/zeppex/internal/zepp"
)

// fakeFetcher fakes the transport boundary with per-endpoint hooks.
type fakeFetcher struct {
	bandData func(fromDate, toDate string) ([]zepp.BandDay, error)
	eventsV1 func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error)
	eventsV2 func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error)
	sport    func(metric, startDay, endDay string) ([]json.RawMessage, error)
}

func (f *fakeFetcher) BandData(_ context.Context, fromDate, toDate string) ([]zepp.BandDay, error) {
	if f.bandData == nil {
		return nil, nil
	}
	return f.bandData(fromDate, toDate)
}

func (f *fakeFetcher) EventsV1(_ context.Context, eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
	if f.eventsV1 == nil {
		return nil, nil
	}
	return f.eventsV1(eventType, subType, fromMs, toMs, limit)
}

func (f *fakeFetcher) EventsV2(_ context.Context, eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
	if f.eventsV2 == nil {
		return nil, nil
	}
	return f.eventsV2(eventType, subType, fromMs, toMs, limit)
}

func (f *fakeFetcher) SportStatistics(_ context.Context, metric, startDay, endDay string) ([]json.RawMessage, error) {
	if f.sport == nil {
		return nil, nil
	}
	return f.sport(metric, startDay, endDay)
}

func encodeSummary(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(data)
}

func encodeHR(bytes []byte) string {
	return base64.StdEncoding.EncodeToString(bytes)
}

func TestHeartRate_DecodesBandData(t *testing.T) {
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			assert.Equal(t, "2026-02-06", fromDate)
			assert.Equal(t, "2026-02-06", toDate)
			return []zepp.BandDay{
				{Date: "2026-02-06", DataHR: encodeHR([]byte{0, 0, 0, 72, 75})},
			}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	readings, err := svc.HeartRate(context.Background(), "2026-02-06")
	require.NoError(t, err)

	require.Len(t, readings, 2)
	assert.Equal(t, domain.HeartRateSample{Minute: 3, Time: "00:03", BPM: 72}, readings[0])
}

func TestHeartRate_CorruptDataDowngradesToEmpty(t *testing.T) {
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return []zepp.BandDay{{Date: "2026-02-06", DataHR: "!!!not base64!!!"}}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	readings, err := svc.HeartRate(context.Background(), "2026-02-06")
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestHeartRateRaw_PreservesSentinels(t *testing.T) {
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return []zepp.BandDay{{Date: "2026-02-06", DataHR: encodeHR([]byte{0, 72, 254, 255, 80})}}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	values, err := svc.HeartRateRaw(context.Background(), "2026-02-06")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 72, 254, 255, 80}, values)
}

func TestHeartRate_FetchErrorPropagates(t *testing.T) {
	wantErr := errors.New("network down")
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return nil, wantErr
		},
	}
	svc := NewService(fetcher, time.UTC)

	_, err := svc.HeartRate(context.Background(), "2026-02-06")
	assert.ErrorIs(t, err, wantErr)
}

func TestSteps_MapsSummary(t *testing.T) {
	summary := map[string]any{
		"goal": 8000,
		"stp": map[string]any{
			"ttl":     6548,
			"dis":     4644,
			"cal":     1247,
			"runDist": 800,
			"runCal":  95,
			"stage": []map[string]any{
				{"start": 420, "stop": 435, "mode": 1, "step": 900, "dis": 600, "cal": 30},
				{"start": 500, "stop": 520, "mode": 7, "step": 2600, "dis": 2900, "cal": 180},
				{"start": 600, "stop": 610, "mode": 42, "step": 100},
			},
		},
	}
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return []zepp.BandDay{{Date: "2026-02-06", Summary: encodeSummary(t, summary)}}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	steps, err := svc.Steps(context.Background(), "2026-02-06")
	require.NoError(t, err)
	require.NotNil(t, steps)

	assert.Equal(t, 6548, steps.TotalSteps)
	assert.Equal(t, 4644, steps.DistanceMeters)
	assert.Equal(t, 1247, steps.Calories)
	assert.Equal(t, 800, steps.RunDistanceMeters)
	assert.Equal(t, 95, steps.RunCalories)
	assert.Equal(t, 8000, steps.Goal)

	require.Len(t, steps.Stages, 3)
	assert.Equal(t, domain.ModeSlowWalking, steps.Stages[0].Mode)
	assert.Equal(t, domain.ModeRunning, steps.Stages[1].Mode)
	assert.Equal(t, domain.ActivityMode("unknown_42"), steps.Stages[2].Mode)
	assert.Equal(t, 900, steps.Stages[0].Steps)
}

func TestSteps_AbsentIsNilNotError(t *testing.T) {
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return []zepp.BandDay{{Date: "2026-02-06", Summary: encodeSummary(t, map[string]any{"goal": 8000})}}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	steps, err := svc.Steps(context.Background(), "2026-02-06")
	require.NoError(t, err)
	assert.Nil(t, steps)
}

func TestSteps_NoDaysReturned(t *testing.T) {
	svc := NewService(&fakeFetcher{}, time.UTC)

	steps, err := svc.Steps(context.Background(), "2026-02-06")
	require.NoError(t, err)
	assert.Nil(t, steps)
}

func TestSleep_FetchesTwoDayWindow(t *testing.T) {
	st := time.Date(2026, 2, 5, 23, 0, 0, 0, time.UTC).Unix()
	ed := time.Date(2026, 2, 6, 6, 30, 0, 0, time.UTC).Unix()
	summary := map[string]any{
		"slp": map[string]any{
			"st": st, "ed": ed, "rhr": 56, "ss": 79,
			"stage": []map[string]any{{"start": 1380, "stop": 1410, "mode": 4}},
		},
	}
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			assert.Equal(t, "2026-02-05", fromDate)
			assert.Equal(t, "2026-02-06", toDate)
			return []zepp.BandDay{
				{Date: "2026-02-05", Summary: encodeSummary(t, summary)},
				{Date: "2026-02-06"},
			}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	session, err := svc.Sleep(context.Background(), "2026-02-06")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, "2026-02-05", session.FetchedFrom)
	assert.Equal(t, 56, session.RestingHR)
	assert.Equal(t, 450, session.DurationMinutes)
}

func TestSleep_CorruptSummaryDowngradesToAbsent(t *testing.T) {
	st := time.Date(2026, 2, 6, 0, 30, 0, 0, time.UTC).Unix()
	ed := time.Date(2026, 2, 6, 7, 30, 0, 0, time.UTC).Unix()
	good := map[string]any{"slp": map[string]any{"st": st, "ed": ed}}

	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return []zepp.BandDay{
				{Date: "2026-02-05", Summary: "%%%corrupt%%%"},
				{Date: "2026-02-06", Summary: encodeSummary(t, good)},
			}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	session, err := svc.Sleep(context.Background(), "2026-02-06")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "2026-02-06", session.FetchedFrom)
}

func TestSleep_NoSessionIsNilNotError(t *testing.T) {
	fetcher := &fakeFetcher{
		bandData: func(fromDate, toDate string) ([]zepp.BandDay, error) {
			return []zepp.BandDay{{Date: "2026-02-05"}, {Date: "2026-02-06"}}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	session, err := svc.Sleep(context.Background(), "2026-02-06")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSleep_BadDate(t *testing.T) {
	svc := NewService(&fakeFetcher{}, time.UTC)
	_, err := svc.Sleep(context.Background(), "06/02/2026")
	assert.Error(t, err)
}

func TestStress_MapsItemsAndDecodesReadings(t *testing.T) {
	item := map[string]any{
		"timestamp":        1770357600000,
		"avgStress":        "41", // the vendor mixes strings and numbers
		"maxStress":        86,
		"minStress":        12,
		"relaxProportion":  "30",
		"normalProportion": 45,
		"mediumProportion": 20,
		"highProportion":   5,
		"data":             `[{"time":1770357600000,"value":47},{"time":1770357900000,"value":57}]`,
	}
	raw, err := json.Marshal(item)
	require.NoError(t, err)

	fetcher := &fakeFetcher{
		eventsV1: func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
			assert.Equal(t, "all_day_stress", eventType)
			assert.Empty(t, subType)
			assert.Equal(t, time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC).UnixMilli(), fromMs)
			assert.Equal(t, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC).UnixMilli()-1, toMs)
			return []json.RawMessage{raw}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	records, err := svc.Stress(context.Background(), "2026-02-06", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 41, rec.AvgStress)
	assert.Equal(t, 86, rec.MaxStress)
	assert.Equal(t, 12, rec.MinStress)
	assert.Equal(t, domain.StressZonePercentages{Relaxed: 30, Normal: 45, Medium: 20, High: 5}, rec.ZonePercentages)
	require.Len(t, rec.Readings, 2)
	assert.Equal(t, 47, rec.Readings[0].Value)
}

func TestStress_BadReadingsDowngradeToEmpty(t *testing.T) {
	fetcher := &fakeFetcher{
		eventsV1: func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
			return []json.RawMessage{
				json.RawMessage(`{"timestamp":1,"avgStress":40,"data":"[{broken"}`),
				json.RawMessage(`{"timestamp":2,"avgStress":50,"data":"no brackets"}`),
			}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	records, err := svc.Stress(context.Background(), "2026-02-06", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Readings)
	assert.Empty(t, records[1].Readings)
	assert.NotNil(t, records[0].Readings)
}

func TestTrainingLoad_MapsValue(t *testing.T) {
	item := `{
		"timestamp": 1770357600000,
		"value": {
			"exerciseScore": 35, "totalScore": 52, "targetScore": 60,
			"completionPercent": 87, "recoveryFactor": 0.8,
			"atl": 41.2, "ctl": 38.9, "tsb": -2.3,
			"exercisePlan": {"heartRateLower": 120, "heartRateUpper": 150, "duration": 45, "intensity": 3},
			"activities": [{"startTime": 400, "endTime": 460, "currentScore": 18.5}]
		}
	}`
	fetcher := &fakeFetcher{
		eventsV2: func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
			assert.Equal(t, "exertion", eventType)
			assert.Equal(t, "algo_result", subType)
			assert.Zero(t, fromMs) // full history keeps the rolling window intact
			return []json.RawMessage{json.RawMessage(item)}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	records, err := svc.TrainingLoad(context.Background(), "2026-02-01", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 41.2, rec.ATL)
	assert.Equal(t, 38.9, rec.CTL)
	assert.Equal(t, -2.3, rec.TSB)
	require.NotNil(t, rec.ExercisePlan)
	assert.Equal(t, 120, rec.ExercisePlan.HRLower)
	assert.Equal(t, 45, rec.ExercisePlan.DurationMinutes)
	require.Len(t, rec.Activities, 1)
	assert.Equal(t, 18.5, rec.Activities[0].Score)
}

func TestTrainingLoad_MissingPlanStaysNil(t *testing.T) {
	fetcher := &fakeFetcher{
		eventsV2: func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
			return []json.RawMessage{json.RawMessage(`{"timestamp":1,"value":{"atl":10}}`)}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	records, err := svc.TrainingLoad(context.Background(), "2026-02-01", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].ExercisePlan)
	assert.Empty(t, records[0].Activities)
}

func TestPHN_MapsResult(t *testing.T) {
	fetcher := &fakeFetcher{
		eventsV2: func(eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
			assert.Equal(t, "phn", eventType)
			assert.Equal(t, "daily_analysis", subType)
			return []json.RawMessage{
				json.RawMessage(`{"timestamp":5,"value":{"result":{"trimp":62.4,"atl":40,"ctl":35,"tsb":-5}}}`),
			}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	records, err := svc.PHN(context.Background(), "2026-02-01", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 62.4, records[0].TRIMP)
	assert.Equal(t, -5.0, records[0].TSB)
}

func TestSportLoad_MapsItems(t *testing.T) {
	fetcher := &fakeFetcher{
		sport: func(metric, startDay, endDay string) ([]json.RawMessage, error) {
			assert.Equal(t, "SPORT_LOAD", metric)
			return []json.RawMessage{
				json.RawMessage(`{"dayId":"2026-02-06","currnetDayTrainLoad":120,"wtlSum":430,"wtlSumOptimalMin":300,"wtlSumOptimalMax":600,"wtlSumOverreaching":750}`),
			}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	records, err := svc.SportLoad(context.Background(), "2026-02-06", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-02-06", records[0].Date)
	assert.Equal(t, 120, records[0].DailyLoad)
	assert.Equal(t, 430, records[0].WeeklyLoad)
	assert.Equal(t, 600, records[0].OptimalMax)
}

func TestVO2Max_PassesThroughRawItems(t *testing.T) {
	fetcher := &fakeFetcher{
		sport: func(metric, startDay, endDay string) ([]json.RawMessage, error) {
			assert.Equal(t, "VO2_MAX", metric)
			return []json.RawMessage{json.RawMessage(`{"vo2":48}`)}, nil
		},
	}
	svc := NewService(fetcher, time.UTC)

	items, err := svc.VO2Max(context.Background(), "2026-02-01", "2026-02-06")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, `{"vo2":48}`, string(items[0]))
}
