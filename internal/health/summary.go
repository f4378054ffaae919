package health

import (
	"bytes"
	"strconv"
)

// Raw band_data summary shapes, using the vendor's terse field names. These
// stay private to the normalizer; everything public speaks internal/domain.

type bandSummary struct {
	Goal int       `json:"goal"`
	Stp  *rawSteps `json:"stp"`
	Slp  *rawSleep `json:"slp"`
}

type rawSleep struct {
	St       int64      `json:"st"` // session start, epoch seconds; 0 = missing
	Ed       int64      `json:"ed"` // session end, epoch seconds; 0 = missing
	Rhr      int        `json:"rhr"`
	Ss       int        `json:"ss"`
	Dp       int        `json:"dp"`
	Lt       int        `json:"lt"`
	Stage    []rawStage `json:"stage"`
	OddStage []rawStage `json:"odd_stage"` // naps
}

type rawSteps struct {
	Ttl     int        `json:"ttl"`
	Dis     int        `json:"dis"`
	Cal     int        `json:"cal"`
	RunDist int        `json:"runDist"`
	RunCal  int        `json:"runCal"`
	Stage   []rawStage `json:"stage"`
}

// rawStage covers both sleep stages (start/stop/mode) and activity stages
// (plus step/dis/cal); unused fields stay zero.
type rawStage struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
	Mode  int `json:"mode"`
	Step  int `json:"step"`
	Dis   int `json:"dis"`
	Cal   int `json:"cal"`
}

// flexInt unmarshals vendor numeric fields that arrive either as JSON numbers
// or as quoted strings ("23"), occasionally with a fractional part.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(string(b)); err == nil {
		*f = flexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = flexInt(int(fl))
	return nil
}
