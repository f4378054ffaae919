package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSleepStageForCode(t *testing.T) {
	assert.Equal(t, StageLight, SleepStageForCode(4))
	assert.Equal(t, StageDeep, SleepStageForCode(5))
	assert.Equal(t, StageAwake, SleepStageForCode(7))
	assert.Equal(t, StageREM, SleepStageForCode(8))
}

func TestSleepStageForCode_UnknownPreserved(t *testing.T) {
	assert.Equal(t, SleepStage("unknown_12"), SleepStageForCode(12))
	assert.Equal(t, SleepStage("unknown_0"), SleepStageForCode(0))
}

func TestActivityModeForCode(t *testing.T) {
	assert.Equal(t, ModeSlowWalking, ActivityModeForCode(1))
	assert.Equal(t, ModeFastWalking, ActivityModeForCode(3))
	assert.Equal(t, ModeRunning, ActivityModeForCode(7))
	assert.Equal(t, ModeLightActivity, ActivityModeForCode(76))
	assert.Equal(t, ActivityMode("unknown_42"), ActivityModeForCode(42))
}

func TestStressZoneForValue_Bands(t *testing.T) {
	cases := []struct {
		value int
		zone  StressZone
	}{
		{1, ZoneRelaxed},
		{25, ZoneRelaxed},
		{26, ZoneNormal},
		{50, ZoneNormal},
		{51, ZoneMedium},
		{75, ZoneMedium},
		{76, ZoneHigh},
		{100, ZoneHigh},
		{0, ZoneNone},
		{101, ZoneNone},
		{-5, ZoneNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.zone, StressZoneForValue(tc.value), "value %d", tc.value)
	}
}
