package health

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/zeppex/zeppex/internal/decode"
	"github.com/zeppex/zeppex/internal/domain"
)

const eventLimit = 200

type rawStressItem struct {
	Timestamp        int64   `json:"timestamp"`
	AvgStress        flexInt `json:"avgStress"`
	MaxStress        flexInt `json:"maxStress"`
	MinStress        flexInt `json:"minStress"`
	RelaxProportion  flexInt `json:"relaxProportion"`
	NormalProportion flexInt `json:"normalProportion"`
	MediumProportion flexInt `json:"mediumProportion"`
	HighProportion   flexInt `json:"highProportion"`
	Data             string  `json:"data"`
}

// Stress returns the daily stress records for an inclusive date range. The
// 5-minute readings come from a JSON-array-in-a-string field; a malformed
// readings payload downgrades to an empty readings list, not a failure.
func (s *Service) Stress(ctx context.Context, fromDate, toDate string) ([]domain.StressDayRecord, error) {
	fromMs, err := s.dateToMs(fromDate)
	if err != nil {
		return nil, err
	}
	toMs, err := s.endOfDayMs(toDate)
	if err != nil {
		return nil, err
	}

	items, err := s.fetcher.EventsV1(ctx, "all_day_stress", "", fromMs, toMs, eventLimit)
	if err != nil {
		return nil, err
	}

	records := make([]domain.StressDayRecord, 0, len(items))
	for _, item := range items {
		var raw rawStressItem
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}

		record := domain.StressDayRecord{
			Timestamp: raw.Timestamp,
			AvgStress: int(raw.AvgStress),
			MaxStress: int(raw.MaxStress),
			MinStress: int(raw.MinStress),
			ZonePercentages: domain.StressZonePercentages{
				Relaxed: int(raw.RelaxProportion),
				Normal:  int(raw.NormalProportion),
				Medium:  int(raw.MediumProportion),
				High:    int(raw.HighProportion),
			},
			Readings: []domain.StressReading{},
		}

		if strings.HasPrefix(raw.Data, "[") {
			if readings, err := decode.StressData(raw.Data); err == nil {
				record.Readings = readings
			}
		}

		records = append(records, record)
	}
	return records, nil
}

type rawExertionItem struct {
	Timestamp int64 `json:"timestamp"`
	Value     struct {
		ExerciseScore     float64 `json:"exerciseScore"`
		TotalScore        float64 `json:"totalScore"`
		TargetScore       float64 `json:"targetScore"`
		CompletionPercent float64 `json:"completionPercent"`
		RecoveryFactor    float64 `json:"recoveryFactor"`
		ATL               float64 `json:"atl"`
		CTL               float64 `json:"ctl"`
		TSB               float64 `json:"tsb"`
		ExercisePlan      *struct {
			HeartRateLower int `json:"heartRateLower"`
			HeartRateUpper int `json:"heartRateUpper"`
			Duration       int `json:"duration"`
			Intensity      int `json:"intensity"`
		} `json:"exercisePlan"`
		Activities []struct {
			StartTime    int     `json:"startTime"`
			EndTime      int     `json:"endTime"`
			CurrentScore float64 `json:"currentScore"`
		} `json:"activities"`
	} `json:"value"`
}

// TrainingLoad returns the exertion records up to the end of toDate. ATL, CTL
// and TSB are rolling metrics, so the query always starts from zero to keep
// the rolling window intact; fromDate is accepted for interface symmetry.
func (s *Service) TrainingLoad(ctx context.Context, fromDate, toDate string) ([]domain.TrainingLoadRecord, error) {
	toMs, err := s.endOfDayMs(toDate)
	if err != nil {
		return nil, err
	}

	items, err := s.fetcher.EventsV2(ctx, "exertion", "algo_result", 0, toMs, eventLimit)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TrainingLoadRecord, 0, len(items))
	for _, item := range items {
		var raw rawExertionItem
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}

		record := domain.TrainingLoadRecord{
			Timestamp:         raw.Timestamp,
			ExerciseScore:     raw.Value.ExerciseScore,
			TotalScore:        raw.Value.TotalScore,
			TargetScore:       raw.Value.TargetScore,
			CompletionPercent: raw.Value.CompletionPercent,
			RecoveryFactor:    raw.Value.RecoveryFactor,
			ATL:               raw.Value.ATL,
			CTL:               raw.Value.CTL,
			TSB:               raw.Value.TSB,
			Activities:        make([]domain.TrainingActivity, 0, len(raw.Value.Activities)),
		}
		if plan := raw.Value.ExercisePlan; plan != nil {
			record.ExercisePlan = &domain.ExercisePlan{
				HRLower:         plan.HeartRateLower,
				HRUpper:         plan.HeartRateUpper,
				DurationMinutes: plan.Duration,
				Intensity:       plan.Intensity,
			}
		}
		for _, a := range raw.Value.Activities {
			record.Activities = append(record.Activities, domain.TrainingActivity{
				StartMinute: a.StartTime,
				EndMinute:   a.EndTime,
				Score:       a.CurrentScore,
			})
		}
		records = append(records, record)
	}
	return records, nil
}

type rawPHNItem struct {
	Timestamp int64 `json:"timestamp"`
	Value     struct {
		Result struct {
			TRIMP float64 `json:"trimp"`
			ATL   float64 `json:"atl"`
			CTL   float64 `json:"ctl"`
			TSB   float64 `json:"tsb"`
		} `json:"result"`
	} `json:"value"`
}

// PHN returns the daily TRIMP analysis records up to the end of toDate.
func (s *Service) PHN(ctx context.Context, fromDate, toDate string) ([]domain.PHNRecord, error) {
	toMs, err := s.endOfDayMs(toDate)
	if err != nil {
		return nil, err
	}

	items, err := s.fetcher.EventsV2(ctx, "phn", "daily_analysis", 0, toMs, eventLimit)
	if err != nil {
		return nil, err
	}

	records := make([]domain.PHNRecord, 0, len(items))
	for _, item := range items {
		var raw rawPHNItem
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		records = append(records, domain.PHNRecord{
			Timestamp: raw.Timestamp,
			TRIMP:     raw.Value.Result.TRIMP,
			ATL:       raw.Value.Result.ATL,
			CTL:       raw.Value.Result.CTL,
			TSB:       raw.Value.Result.TSB,
		})
	}
	return records, nil
}

type rawSportLoadItem struct {
	DayID string `json:"dayId"`
	// The vendor's field name really is misspelled.
	DailyLoad    flexInt `json:"currnetDayTrainLoad"`
	WeeklyLoad   flexInt `json:"wtlSum"`
	OptimalMin   flexInt `json:"wtlSumOptimalMin"`
	OptimalMax   flexInt `json:"wtlSumOptimalMax"`
	Overreaching flexInt `json:"wtlSumOverreaching"`
}

// SportLoad returns daily sport load with the weekly optimal band for an
// inclusive day range.
func (s *Service) SportLoad(ctx context.Context, fromDate, toDate string) ([]domain.SportLoadRecord, error) {
	items, err := s.fetcher.SportStatistics(ctx, "SPORT_LOAD", fromDate, toDate)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SportLoadRecord, 0, len(items))
	for _, item := range items {
		var raw rawSportLoadItem
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		records = append(records, domain.SportLoadRecord{
			Date:         raw.DayID,
			DailyLoad:    int(raw.DailyLoad),
			WeeklyLoad:   int(raw.WeeklyLoad),
			OptimalMin:   int(raw.OptimalMin),
			OptimalMax:   int(raw.OptimalMax),
			Overreaching: int(raw.Overreaching),
		})
	}
	return records, nil
}

// VO2Max returns the raw VO2 max items for an inclusive day range. The shape
// varies by device, so no normalization is applied. Often empty: the watch
// only produces estimates after qualifying outdoor GPS workouts.
func (s *Service) VO2Max(ctx context.Context, fromDate, toDate string) ([]json.RawMessage, error) {
	return s.fetcher.SportStatistics(ctx, "VO2_MAX", fromDate, toDate)
}
