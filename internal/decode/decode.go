// Package decode turns the Zepp API's non-standard payload encodings into
// structured values: base64-encoded JSON summaries, base64-encoded binary
// heart rate timelines, and JSON arrays embedded as string fields.
//
// Decoders never recover partially: any structural violation fails with a
// *DecodeError, and callers decide whether to downgrade the failure.
package decode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/zeppex/zeppex/internal/domain"
)

// Heart rate bytes of 0 or >= 254 mean "no reading for that minute".
const hrSentinelMax = 254

// DecodeError reports a malformed encoded payload.
type DecodeError struct {
	What string // which payload kind failed
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(what string, err error) error {
	return &DecodeError{What: what, Err: err}
}

// Summary decodes a base64-encoded JSON summary string, as found in the
// "summary" field of band_data responses. The returned bytes are validated
// JSON ready to unmarshal into a caller-side structure.
func Summary(raw string) (json.RawMessage, error) {
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, decodeErr("summary", err)
	}
	var probe any
	if err := json.Unmarshal(decoded, &probe); err != nil {
		return nil, decodeErr("summary", err)
	}
	return json.RawMessage(decoded), nil
}

// HeartRate decodes a base64-encoded binary heart rate timeline into valid
// readings only. Each byte is one minute of the day (index 0 = 00:00); bytes
// of 0 or >= 254 are sentinels and are skipped. Output is in ascending
// minute order.
func HeartRate(raw string) ([]domain.HeartRateSample, error) {
	hrBytes, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, decodeErr("heart rate", err)
	}

	var readings []domain.HeartRateSample
	for minute, bpm := range hrBytes {
		if bpm > 0 && bpm < hrSentinelMax {
			readings = append(readings, domain.HeartRateSample{
				Minute: minute,
				Time:   fmt.Sprintf("%02d:%02d", minute/60, minute%60),
				BPM:    int(bpm),
			})
		}
	}
	return readings, nil
}

// HeartRateRaw decodes a heart rate timeline into every byte value,
// sentinels included, preserving array length and position. A full day is
// 1440 entries. Used when a dense, gap-free timeline is needed for charting.
func HeartRateRaw(raw string) ([]int, error) {
	hrBytes, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, decodeErr("heart rate", err)
	}
	values := make([]int, len(hrBytes))
	for i, b := range hrBytes {
		values[i] = int(b)
	}
	return values, nil
}

// StressData decodes a stress timeline from a JSON string. The vendor embeds
// the array as a string value inside the surrounding JSON, so the input here
// is JSON text, not a native array. An empty array is a valid result; a
// null or otherwise non-array payload is a decode failure.
func StressData(data string) ([]domain.StressReading, error) {
	trimmed := bytes.TrimSpace([]byte(data))
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, decodeErr("stress data", fmt.Errorf("payload is null, not an array"))
	}

	var readings []domain.StressReading
	if err := json.Unmarshal(trimmed, &readings); err != nil {
		return nil, decodeErr("stress data", err)
	}
	if readings == nil {
		readings = []domain.StressReading{}
	}
	return readings, nil
}
