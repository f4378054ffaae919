package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/zeppex/zeppex/internal/domain"
)

// Apple Health record type identifiers.
const (
	hkHeartRate     = "HKQuantityTypeIdentifierHeartRate"
	hkStepCount     = "HKQuantityTypeIdentifierStepCount"
	hkSleepAnalysis = "HKCategoryTypeIdentifierSleepAnalysis"
	hkInBed         = "HKCategoryValueSleepAnalysisInBed"
)

// appleSleepValues maps domain sleep stages to HKCategoryValue identifiers.
// Stages outside this table (the unknown_<code> fallbacks) have no Apple
// equivalent and are omitted from the XML while staying in the domain model.
var appleSleepValues = map[domain.SleepStage]string{
	domain.StageLight: "HKCategoryValueSleepAnalysisAsleepCore",
	domain.StageDeep:  "HKCategoryValueSleepAnalysisAsleepDeep",
	domain.StageREM:   "HKCategoryValueSleepAnalysisAsleepREM",
	domain.StageAwake: "HKCategoryValueSleepAnalysisAwake",
}

const appleDateLayout = "2006-01-02 15:04:05 -0700"

// Record is one Apple Health export record element.
type Record struct {
	Type       string `xml:"type,attr"`
	SourceName string `xml:"sourceName,attr"`
	Unit       string `xml:"unit,attr,omitempty"`
	Value      string `xml:"value,attr"`
	StartDate  string `xml:"startDate,attr"`
	EndDate    string `xml:"endDate,attr"`
}

type exportDate struct {
	Value string `xml:"value,attr"`
}

// HealthData is the root element of an Apple Health export document.
type HealthData struct {
	XMLName    xml.Name   `xml:"HealthData"`
	Locale     string     `xml:"locale,attr"`
	ExportDate exportDate `xml:"ExportDate"`
	Records    []Record   `xml:"Record"`
}

// Counts reports how many records of each kind went into a document.
type Counts struct {
	HeartRate int
	Steps     int
	Sleep     int
}

// Options configures an Apple Health export.
type Options struct {
	SourceName    string // source device name in the XML; defaults to "zeppex"
	TZOffsetHours int    // UTC offset applied to all exported timestamps
	Now           func() time.Time // export timestamp clock; defaults to time.Now
}

// BuildHealthData assembles an Apple Health document from per-date heart
// rate, steps, and sleep data. Heart rate yields one record per sample;
// steps one per day spanning 00:00-23:59; sleep one record per mapped stage
// segment plus one InBed record spanning the full session.
//
// Sleep stage minutes are offsets from midnight of the day the session was
// fetched from (not necessarily the wake date), so minutes past 1439 roll
// into the next calendar day.
func BuildHealthData(
	heartRate map[string][]domain.HeartRateSample,
	steps map[string]*domain.StepsDayRecord,
	sleep map[string]*domain.SleepSession,
	opts Options,
) (*HealthData, Counts, error) {
	if opts.SourceName == "" {
		opts.SourceName = "zeppex"
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	tz := time.FixedZone(fmt.Sprintf("UTC%+d", opts.TZOffsetHours), opts.TZOffsetHours*3600)

	doc := &HealthData{
		Locale:     "en_US",
		ExportDate: exportDate{Value: now().In(tz).Format(appleDateLayout)},
	}
	var counts Counts

	for _, date := range sortedKeys(heartRate) {
		for _, r := range heartRate[date] {
			ts, err := minuteToTime(date, r.Minute, tz)
			if err != nil {
				return nil, Counts{}, err
			}
			stamp := ts.Format(appleDateLayout)
			doc.Records = append(doc.Records, Record{
				Type:       hkHeartRate,
				SourceName: opts.SourceName,
				Unit:       "count/min",
				Value:      strconv.Itoa(r.BPM),
				StartDate:  stamp,
				EndDate:    stamp,
			})
			counts.HeartRate++
		}
	}

	for _, date := range sortedKeys(steps) {
		day := steps[date]
		if day == nil || day.TotalSteps == 0 {
			continue
		}
		dayStart, err := minuteToTime(date, 0, tz)
		if err != nil {
			return nil, Counts{}, err
		}
		dayEnd, err := minuteToTime(date, 1439, tz)
		if err != nil {
			return nil, Counts{}, err
		}
		doc.Records = append(doc.Records, Record{
			Type:       hkStepCount,
			SourceName: opts.SourceName,
			Unit:       "count",
			Value:      strconv.Itoa(day.TotalSteps),
			StartDate:  dayStart.Format(appleDateLayout),
			EndDate:    dayEnd.Format(appleDateLayout),
		})
		counts.Steps++
	}

	for _, date := range sortedKeys(sleep) {
		session := sleep[date]
		if session == nil || len(session.Stages) == 0 {
			continue
		}

		sourceDate := session.FetchedFrom
		if sourceDate == "" {
			sourceDate = date
		}

		for _, stage := range session.Stages {
			appleValue, ok := appleSleepValues[stage.Stage]
			if !ok {
				continue
			}
			start, err := minuteToTime(sourceDate, stage.StartMinute, tz)
			if err != nil {
				return nil, Counts{}, err
			}
			end, err := minuteToTime(sourceDate, stage.EndMinute, tz)
			if err != nil {
				return nil, Counts{}, err
			}
			doc.Records = append(doc.Records, Record{
				Type:       hkSleepAnalysis,
				SourceName: opts.SourceName,
				Value:      appleValue,
				StartDate:  start.Format(appleDateLayout),
				EndDate:    end.Format(appleDateLayout),
			})
			counts.Sleep++
		}

		if !session.Start.IsZero() && !session.End.IsZero() {
			doc.Records = append(doc.Records, Record{
				Type:       hkSleepAnalysis,
				SourceName: opts.SourceName,
				Value:      hkInBed,
				StartDate:  session.Start.In(tz).Format(appleDateLayout),
				EndDate:    session.End.In(tz).Format(appleDateLayout),
			})
			counts.Sleep++
		}
	}

	return doc, counts, nil
}

// WriteHealthXML writes the document with an XML declaration and two-space
// indentation, matching Apple's own export formatting.
func WriteHealthXML(w io.Writer, doc *HealthData) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding health xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// minuteToTime converts a date and minute-of-day offset to an absolute time
// in tz. Minutes past 1439 roll into following days.
func minuteToTime(date string, minute int, tz *time.Location) (time.Time, error) {
	base, err := time.ParseInLocation("2006-01-02", date, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	return base.Add(time.Duration(minute) * time.Minute), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
