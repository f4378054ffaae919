package domain

import "time"

// HeartRateSample is one valid minute-of-day heart rate reading.
type HeartRateSample struct {
	Minute int    `json:"minute"` // 0-1439
	Time   string `json:"time"`   // "HH:MM"
	BPM    int    `json:"bpm"`
}

// SleepStageSegment is one classified span within a sleep session. Minutes
// are offsets from local midnight of the day the session was fetched from and
// may exceed 1439 when a stage crosses midnight.
type SleepStageSegment struct {
	StartMinute     int        `json:"start_minute"`
	EndMinute       int        `json:"end_minute"`
	DurationMinutes int        `json:"duration_minutes"`
	Stage           SleepStage `json:"stage"`
}

// SleepSession is the reconciled sleep record for a wake date. FetchedFrom is
// the calendar day the vendor stored the session under, which is either the
// wake date or the day before it.
type SleepSession struct {
	Date            string              `json:"date"` // wake date, YYYY-MM-DD
	FetchedFrom     string              `json:"fetched_from"`
	RestingHR       int                 `json:"resting_hr"`
	SleepScore      int                 `json:"sleep_score"`
	DeepMinutes     int                 `json:"deep_minutes"`
	LightMinutes    int                 `json:"light_minutes"`
	Start           time.Time           `json:"start"`
	End             time.Time           `json:"end"`
	DurationMinutes int                 `json:"duration_minutes"`
	Stages          []SleepStageSegment `json:"stages"`
	NapStages       []SleepStageSegment `json:"nap_stages"`
}

// ActivityStage is one classified span of step activity within a day.
type ActivityStage struct {
	StartMinute    int          `json:"start_minute"`
	EndMinute      int          `json:"end_minute"`
	Mode           ActivityMode `json:"mode"`
	Steps          int          `json:"steps"`
	DistanceMeters int          `json:"distance_meters"`
	Calories       int          `json:"calories"`
}

// StepsDayRecord holds one day's step and activity totals.
type StepsDayRecord struct {
	Date              string          `json:"date"`
	TotalSteps        int             `json:"total_steps"`
	DistanceMeters    int             `json:"distance_meters"`
	Calories          int             `json:"calories"`
	RunDistanceMeters int             `json:"run_distance_meters"`
	RunCalories       int             `json:"run_calories"`
	Goal              int             `json:"goal"`
	Stages            []ActivityStage `json:"stages"`
}

// StressReading is one 5-minute-cadence stress sample.
type StressReading struct {
	Time  int64 `json:"time"` // unix milliseconds
	Value int   `json:"value"`
}

// StressZonePercentages holds the share of a day spent in each stress zone.
type StressZonePercentages struct {
	Relaxed int `json:"relaxed"`
	Normal  int `json:"normal"`
	Medium  int `json:"medium"`
	High    int `json:"high"`
}

// StressDayRecord aggregates one day's stress readings.
type StressDayRecord struct {
	Timestamp       int64                 `json:"timestamp"` // unix milliseconds
	AvgStress       int                   `json:"avg_stress"`
	MaxStress       int                   `json:"max_stress"`
	MinStress       int                   `json:"min_stress"`
	ZonePercentages StressZonePercentages `json:"zone_percentages"`
	Readings        []StressReading       `json:"readings"`
}

// ExercisePlan is the watch's suggested training window for a day.
type ExercisePlan struct {
	HRLower         int `json:"hr_lower"`
	HRUpper         int `json:"hr_upper"`
	DurationMinutes int `json:"duration_minutes"`
	Intensity       int `json:"intensity"`
}

// TrainingActivity is one scored activity within a training load record.
type TrainingActivity struct {
	StartMinute int     `json:"start_minute"`
	EndMinute   int     `json:"end_minute"`
	Score       float64 `json:"score"`
}

// TrainingLoadRecord holds one day's exertion metrics: acute/chronic training
// load and training stress balance, plus the plan and scored activities.
type TrainingLoadRecord struct {
	Timestamp         int64              `json:"timestamp"`
	ExerciseScore     float64            `json:"exercise_score"`
	TotalScore        float64            `json:"total_score"`
	TargetScore       float64            `json:"target_score"`
	CompletionPercent float64            `json:"completion_percent"`
	RecoveryFactor    float64            `json:"recovery_factor"`
	ATL               float64            `json:"atl"`
	CTL               float64            `json:"ctl"`
	TSB               float64            `json:"tsb"`
	ExercisePlan      *ExercisePlan      `json:"exercise_plan,omitempty"`
	Activities        []TrainingActivity `json:"activities"`
}

// PHNRecord holds one day's TRIMP (training impulse) analysis.
type PHNRecord struct {
	Timestamp int64   `json:"timestamp"`
	TRIMP     float64 `json:"trimp"`
	ATL       float64 `json:"atl"`
	CTL       float64 `json:"ctl"`
	TSB       float64 `json:"tsb"`
}

// SportLoadRecord holds one day's sport load with the weekly optimal band.
type SportLoadRecord struct {
	Date         string `json:"date"`
	DailyLoad    int    `json:"daily_load"`
	WeeklyLoad   int    `json:"weekly_load"`
	OptimalMin   int    `json:"optimal_min"`
	OptimalMax   int    `json:"optimal_max"`
	Overreaching int    `json:"overreaching"`
}
