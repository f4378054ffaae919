package health

import (
	"context"
	"encoding/json"

	"github.com/zeppex/zeppex/internal/zepp"
)

// Fetcher is the transport capability the normalizer depends on. Implemented
// by *zepp.Client; faked in tests.
type Fetcher interface {
	BandData(ctx context.Context, fromDate, toDate string) ([]zepp.BandDay, error)
	EventsV1(ctx context.Context, eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error)
	EventsV2(ctx context.Context, eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error)
	SportStatistics(ctx context.Context, metric, startDay, endDay string) ([]json.RawMessage, error)
}
