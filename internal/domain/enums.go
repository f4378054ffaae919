package domain

import "fmt"

// SleepStage classifies one segment of a sleep session.
type SleepStage string

const (
	StageLight SleepStage = "light"
	StageDeep  SleepStage = "deep"
	StageAwake SleepStage = "awake"
	StageREM   SleepStage = "rem"
)

// sleepStages maps the vendor's numeric sleep mode codes. The code space is
// known to be incomplete; unmapped codes are preserved, not dropped.
var sleepStages = map[int]SleepStage{
	4: StageLight,
	5: StageDeep,
	7: StageAwake,
	8: StageREM,
}

// SleepStageForCode returns the stage for a vendor mode code, or
// "unknown_<code>" for codes outside the mapped set.
func SleepStageForCode(code int) SleepStage {
	if s, ok := sleepStages[code]; ok {
		return s
	}
	return SleepStage(fmt.Sprintf("unknown_%d", code))
}

// ActivityMode classifies one stage of a day's step activity.
type ActivityMode string

const (
	ModeSlowWalking   ActivityMode = "slow_walking"
	ModeFastWalking   ActivityMode = "fast_walking"
	ModeRunning       ActivityMode = "running"
	ModeLightActivity ActivityMode = "light_activity"
)

var activityModes = map[int]ActivityMode{
	1:  ModeSlowWalking,
	3:  ModeFastWalking,
	7:  ModeRunning,
	76: ModeLightActivity,
}

// ActivityModeForCode returns the activity mode for a vendor mode code, or
// "unknown_<code>" for codes outside the mapped set.
func ActivityModeForCode(code int) ActivityMode {
	if m, ok := activityModes[code]; ok {
		return m
	}
	return ActivityMode(fmt.Sprintf("unknown_%d", code))
}

// StressZone is a named band for a 1-100 stress value.
type StressZone string

const (
	ZoneRelaxed StressZone = "relaxed"
	ZoneNormal  StressZone = "normal"
	ZoneMedium  StressZone = "medium"
	ZoneHigh    StressZone = "high"
	ZoneNone    StressZone = ""
)

// StressZoneForValue maps a stress value to its zone:
// 1-25 relaxed, 26-50 normal, 51-75 medium, 76-100 high.
// Values outside 1-100 have no zone.
func StressZoneForValue(v int) StressZone {
	switch {
	case v >= 1 && v <= 25:
		return ZoneRelaxed
	case v >= 26 && v <= 50:
		return ZoneNormal
	case v >= 51 && v <= 75:
		return ZoneMedium
	case v >= 76 && v <= 100:
		return ZoneHigh
	default:
		return ZoneNone
	}
}
