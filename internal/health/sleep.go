package health

import (
	"math"
	"time"

	"github.com/zeppex/zeppex/internal/domain"
)

// reconcileSleep resolves the cross-midnight ambiguity for a wake date. The
// vendor stores a session under the day it started, so the session for wake
// date D may live under D-1 (started before midnight) or D (started after).
//
// Days are scanned in fetch order (D-1 first). A day whose session ends on
// the wake date is accepted immediately; an exact end-date match always wins.
// Failing that, a day whose own date equals the wake date is held as a
// fallback. No usable session is a normal "no data yet" outcome, not an
// error, so the return is nil rather than a failure.
func reconcileSleep(days []daySummary, wakeDate string, loc *time.Location) *domain.SleepSession {
	var best *rawSleep
	var bestSource string

	for _, day := range days {
		if day.summary == nil || day.summary.Slp == nil {
			continue
		}
		slp := day.summary.Slp
		if slp.Ed == 0 || slp.St == 0 {
			continue
		}

		endDate := time.Unix(slp.Ed, 0).In(loc).Format(dateLayout)
		if endDate == wakeDate {
			best = slp
			bestSource = day.date
			break
		}

		if day.date == wakeDate && best == nil {
			best = slp
			bestSource = day.date
		}
	}

	if best == nil {
		return nil
	}

	start := time.Unix(best.St, 0).In(loc)
	end := time.Unix(best.Ed, 0).In(loc)

	return &domain.SleepSession{
		Date:            wakeDate,
		FetchedFrom:     bestSource,
		RestingHR:       best.Rhr,
		SleepScore:      best.Ss,
		DeepMinutes:     best.Dp,
		LightMinutes:    best.Lt,
		Start:           start,
		End:             end,
		DurationMinutes: int(math.Round(end.Sub(start).Minutes())),
		Stages:          expandStages(best.Stage),
		NapStages:       expandStages(best.OddStage),
	}
}

func expandStages(stages []rawStage) []domain.SleepStageSegment {
	out := make([]domain.SleepStageSegment, 0, len(stages))
	for _, st := range stages {
		out = append(out, domain.SleepStageSegment{
			StartMinute:     st.Start,
			EndMinute:       st.Stop,
			DurationMinutes: st.Stop - st.Start,
			Stage:           domain.SleepStageForCode(st.Mode),
		})
	}
	return out
}
