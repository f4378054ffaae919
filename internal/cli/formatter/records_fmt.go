package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zeppex/zeppex/internal/domain"
)

// field renders one aligned "label: value" line.
func field(label, value string) string {
	return fmt.Sprintf("  %s %s", Dim(fmt.Sprintf("%-14s", label+":")), value)
}

// Minutes renders a minute count as "7h 30m".
func Minutes(total int) string {
	h, m := total/60, total%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// HeartRateSummary renders min/avg/max over a day's valid readings.
func HeartRateSummary(date string, samples []domain.HeartRateSample) string {
	var b strings.Builder
	b.WriteString(Header("Heart Rate " + date))
	b.WriteString("\n")

	if len(samples) == 0 {
		b.WriteString(Dim("  no readings"))
		return b.String()
	}

	minBPM, maxBPM, sum := samples[0].BPM, samples[0].BPM, 0
	for _, s := range samples {
		if s.BPM < minBPM {
			minBPM = s.BPM
		}
		if s.BPM > maxBPM {
			maxBPM = s.BPM
		}
		sum += s.BPM
	}

	b.WriteString(field("readings", fmt.Sprintf("%d", len(samples))))
	b.WriteString("\n")
	b.WriteString(field("min", StyleBlue.Render(fmt.Sprintf("%d bpm", minBPM))))
	b.WriteString("\n")
	b.WriteString(field("avg", StyleGreen.Render(fmt.Sprintf("%d bpm", sum/len(samples)))))
	b.WriteString("\n")
	b.WriteString(field("max", StyleRed.Render(fmt.Sprintf("%d bpm", maxBPM))))
	return b.String()
}

// Steps renders a day's step record.
func Steps(rec *domain.StepsDayRecord) string {
	var b strings.Builder
	b.WriteString(Header("Steps " + rec.Date))
	b.WriteString("\n")

	total := fmt.Sprintf("%d", rec.TotalSteps)
	if rec.Goal > 0 {
		style := StyleYellow
		if rec.TotalSteps >= rec.Goal {
			style = StyleGreen
		}
		total = style.Render(fmt.Sprintf("%d / %d goal", rec.TotalSteps, rec.Goal))
	}
	b.WriteString(field("steps", total))
	b.WriteString("\n")
	b.WriteString(field("distance", fmt.Sprintf("%.1f km", float64(rec.DistanceMeters)/1000)))
	b.WriteString("\n")
	b.WriteString(field("calories", fmt.Sprintf("%d kcal", rec.Calories)))

	if len(rec.Stages) > 0 {
		b.WriteString("\n")
		b.WriteString(field("activity", fmt.Sprintf("%d stages", len(rec.Stages))))
	}
	return b.String()
}

// Sleep renders a reconciled sleep session.
func Sleep(session *domain.SleepSession) string {
	var b strings.Builder
	b.WriteString(Header("Sleep " + session.Date))
	b.WriteString("\n")

	if !session.Start.IsZero() && !session.End.IsZero() {
		b.WriteString(field("window", fmt.Sprintf("%s → %s",
			session.Start.Format("Mon 15:04"), session.End.Format("Mon 15:04"))))
		b.WriteString("\n")
	}
	b.WriteString(field("duration", Bold(Minutes(session.DurationMinutes))))
	b.WriteString("\n")
	b.WriteString(field("score", scoreStyle(session.SleepScore).Render(fmt.Sprintf("%d", session.SleepScore))))
	b.WriteString("\n")
	b.WriteString(field("resting hr", fmt.Sprintf("%d bpm", session.RestingHR)))
	b.WriteString("\n")
	b.WriteString(field("deep", StageStyle(domain.StageDeep).Render(Minutes(session.DeepMinutes))))
	b.WriteString("\n")
	b.WriteString(field("light", StageStyle(domain.StageLight).Render(Minutes(session.LightMinutes))))

	if len(session.Stages) > 0 {
		b.WriteString("\n")
		b.WriteString(field("stages", stageBreakdown(session.Stages)))
	}
	if len(session.NapStages) > 0 {
		b.WriteString("\n")
		b.WriteString(field("naps", fmt.Sprintf("%d segments", len(session.NapStages))))
	}
	return b.String()
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 60:
		return StyleYellow
	default:
		return StyleRed
	}
}

func stageBreakdown(stages []domain.SleepStageSegment) string {
	counts := make(map[domain.SleepStage]int)
	order := []domain.SleepStage{}
	for _, seg := range stages {
		if _, seen := counts[seg.Stage]; !seen {
			order = append(order, seg.Stage)
		}
		counts[seg.Stage] += seg.EndMinute - seg.StartMinute
	}

	parts := make([]string, 0, len(order))
	for _, stage := range order {
		parts = append(parts, StageStyle(stage).Render(fmt.Sprintf("%s %s", stage, Minutes(counts[stage]))))
	}
	return strings.Join(parts, Dim(" · "))
}

// Stress renders a day's stress record.
func Stress(rec domain.StressDayRecord, loc *time.Location) string {
	var b strings.Builder
	date := time.UnixMilli(rec.Timestamp).In(loc).Format("2006-01-02")
	b.WriteString(Header("Stress " + date))
	b.WriteString("\n")

	b.WriteString(field("avg", StressStyle(domain.StressZoneForValue(rec.AvgStress)).Render(fmt.Sprintf("%d", rec.AvgStress))))
	b.WriteString("\n")
	b.WriteString(field("range", fmt.Sprintf("%d – %d", rec.MinStress, rec.MaxStress)))
	b.WriteString("\n")

	z := rec.ZonePercentages
	zones := strings.Join([]string{
		StressStyle(domain.ZoneRelaxed).Render(fmt.Sprintf("relaxed %d%%", z.Relaxed)),
		StressStyle(domain.ZoneNormal).Render(fmt.Sprintf("normal %d%%", z.Normal)),
		StressStyle(domain.ZoneMedium).Render(fmt.Sprintf("medium %d%%", z.Medium)),
		StressStyle(domain.ZoneHigh).Render(fmt.Sprintf("high %d%%", z.High)),
	}, Dim(" · "))
	b.WriteString(field("zones", zones))
	b.WriteString("\n")
	b.WriteString(field("readings", fmt.Sprintf("%d", len(rec.Readings))))
	return b.String()
}

// TrainingLoad renders one exertion record.
func TrainingLoad(rec domain.TrainingLoadRecord, loc *time.Location) string {
	var b strings.Builder
	date := time.UnixMilli(rec.Timestamp).In(loc).Format("2006-01-02")
	b.WriteString(Header("Training Load " + date))
	b.WriteString("\n")

	b.WriteString(field("total score", Bold(fmt.Sprintf("%.1f", rec.TotalScore))))
	b.WriteString("\n")
	b.WriteString(field("target", fmt.Sprintf("%.1f (%.0f%% complete)", rec.TargetScore, rec.CompletionPercent)))
	b.WriteString("\n")
	b.WriteString(field("atl / ctl", fmt.Sprintf("%.1f / %.1f", rec.ATL, rec.CTL)))
	b.WriteString("\n")
	b.WriteString(field("tsb", tsbStyle(rec.TSB).Render(fmt.Sprintf("%.1f", rec.TSB))))

	if plan := rec.ExercisePlan; plan != nil {
		b.WriteString("\n")
		b.WriteString(field("plan", fmt.Sprintf("%d–%d bpm for %s",
			plan.HRLower, plan.HRUpper, Minutes(plan.DurationMinutes))))
	}
	if len(rec.Activities) > 0 {
		b.WriteString("\n")
		b.WriteString(field("activities", fmt.Sprintf("%d", len(rec.Activities))))
	}
	return b.String()
}

func tsbStyle(tsb float64) lipgloss.Style {
	switch {
	case tsb < -10:
		return StyleRed
	case tsb < 0:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// SportLoad renders one sport load record against its weekly optimal band.
func SportLoad(rec domain.SportLoadRecord) string {
	var b strings.Builder
	b.WriteString(Header("Sport Load " + rec.Date))
	b.WriteString("\n")

	b.WriteString(field("daily", fmt.Sprintf("%d", rec.DailyLoad)))
	b.WriteString("\n")

	weekly := fmt.Sprintf("%d", rec.WeeklyLoad)
	switch {
	case rec.WeeklyLoad > rec.Overreaching && rec.Overreaching > 0:
		weekly = StyleRed.Render(weekly + " (overreaching)")
	case rec.WeeklyLoad >= rec.OptimalMin && rec.WeeklyLoad <= rec.OptimalMax:
		weekly = StyleGreen.Render(weekly + " (optimal)")
	default:
		weekly = StyleYellow.Render(weekly)
	}
	b.WriteString(field("weekly", weekly))
	b.WriteString("\n")
	b.WriteString(field("optimal band", fmt.Sprintf("%d – %d", rec.OptimalMin, rec.OptimalMax)))
	return b.String()
}

// PHN renders one TRIMP analysis record.
func PHN(rec domain.PHNRecord, loc *time.Location) string {
	var b strings.Builder
	date := time.UnixMilli(rec.Timestamp).In(loc).Format("2006-01-02")
	b.WriteString(Header("TRIMP " + date))
	b.WriteString("\n")

	b.WriteString(field("trimp", Bold(fmt.Sprintf("%.1f", rec.TRIMP))))
	b.WriteString("\n")
	b.WriteString(field("atl / ctl", fmt.Sprintf("%.1f / %.1f", rec.ATL, rec.CTL)))
	b.WriteString("\n")
	b.WriteString(field("tsb", tsbStyle(rec.TSB).Render(fmt.Sprintf("%.1f", rec.TSB))))
	return b.String()
}
