// Package health is the normalizer: it turns the Zepp API's raw day payloads
// into the typed records in internal/domain. It owns the per-field policy for
// decode failures (downgrade to absent, never to a hard error) and the
// cross-midnight sleep reconciliation.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeppex/zeppex/internal/decode"
	"github.com/zeppex/zeppex/internal/domain"
)

const dateLayout = "2006-01-02"

// Service normalizes raw API responses into domain records.
type Service struct {
	fetcher Fetcher
	loc     *time.Location
}

// NewService creates a Service. loc is the local timezone used to resolve
// epoch timestamps to calendar dates; nil means time.Local.
func NewService(fetcher Fetcher, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{fetcher: fetcher, loc: loc}
}

// daySummary is one fetched day with its embedded payloads decoded. A decode
// failure for a field leaves that field absent rather than failing the day:
// partial data beats a hard failure for a multi-field blob.
type daySummary struct {
	date         string
	summary      *bandSummary
	heartRate    []domain.HeartRateSample
	heartRateRaw []int
}

func (s *Service) fetchDays(ctx context.Context, fromDate, toDate string) ([]daySummary, error) {
	raw, err := s.fetcher.BandData(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	days := make([]daySummary, 0, len(raw))
	for _, day := range raw {
		d := daySummary{date: day.Date}

		if day.Summary != "" {
			if blob, err := decode.Summary(day.Summary); err == nil {
				var summary bandSummary
				if err := json.Unmarshal(blob, &summary); err == nil {
					d.summary = &summary
				}
			}
		}

		if day.DataHR != "" {
			if readings, err := decode.HeartRate(day.DataHR); err == nil {
				d.heartRate = readings
			}
			if values, err := decode.HeartRateRaw(day.DataHR); err == nil {
				d.heartRateRaw = values
			}
		}

		days = append(days, d)
	}
	return days, nil
}

func (s *Service) fetchDay(ctx context.Context, date string) (*daySummary, error) {
	days, err := s.fetchDays(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}
	return &days[0], nil
}

// HeartRate returns the valid minute-by-minute readings for a date, in
// ascending minute order. An empty slice means no readings, not a failure.
func (s *Service) HeartRate(ctx context.Context, date string) ([]domain.HeartRateSample, error) {
	day, err := s.fetchDay(ctx, date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}
	return day.heartRate, nil
}

// HeartRateRaw returns the dense per-minute timeline for a date, sentinel
// values included, for gap-free charting.
func (s *Service) HeartRateRaw(ctx context.Context, date string) ([]int, error) {
	day, err := s.fetchDay(ctx, date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}
	return day.heartRateRaw, nil
}

// Steps returns the step and activity record for a date, or nil when the day
// has no step data.
func (s *Service) Steps(ctx context.Context, date string) (*domain.StepsDayRecord, error) {
	day, err := s.fetchDay(ctx, date)
	if err != nil {
		return nil, err
	}
	if day == nil || day.summary == nil || day.summary.Stp == nil {
		return nil, nil
	}

	stp := day.summary.Stp
	stages := make([]domain.ActivityStage, 0, len(stp.Stage))
	for _, st := range stp.Stage {
		stages = append(stages, domain.ActivityStage{
			StartMinute:    st.Start,
			EndMinute:      st.Stop,
			Mode:           domain.ActivityModeForCode(st.Mode),
			Steps:          st.Step,
			DistanceMeters: st.Dis,
			Calories:       st.Cal,
		})
	}

	return &domain.StepsDayRecord{
		Date:              date,
		TotalSteps:        stp.Ttl,
		DistanceMeters:    stp.Dis,
		Calories:          stp.Cal,
		RunDistanceMeters: stp.RunDist,
		RunCalories:       stp.RunCal,
		Goal:              day.summary.Goal,
		Stages:            stages,
	}, nil
}

// Sleep returns the reconciled sleep session for a wake date, or nil when
// neither candidate day holds a usable session. Sessions that start before
// midnight are stored under the previous day, so this fetches a two-day
// window (two API calls per query).
func (s *Service) Sleep(ctx context.Context, wakeDate string) (*domain.SleepSession, error) {
	d, err := time.ParseInLocation(dateLayout, wakeDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", wakeDate, err)
	}
	prevDate := d.AddDate(0, 0, -1).Format(dateLayout)

	days, err := s.fetchDays(ctx, prevDate, wakeDate)
	if err != nil {
		return nil, err
	}
	return reconcileSleep(days, wakeDate, s.loc), nil
}

func (s *Service) dateToMs(date string) (int64, error) {
	d, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return 0, fmt.Errorf("parsing date %q: %w", date, err)
	}
	return d.UnixMilli(), nil
}

func (s *Service) endOfDayMs(date string) (int64, error) {
	ms, err := s.dateToMs(date)
	if err != nil {
		return 0, err
	}
	return ms + 24*60*60*1000 - 1, nil
}
