// Package server exposes the normalized health records over a small JSON API.
// Responses for past days are served read-through from the cache; the current
// day is always fetched live because the vendor keeps appending to it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/zeppex/zeppex/internal/domain"
	"github.com/zeppex/zeppex/internal/zepp"
)

const dateLayout = "2006-01-02"

// HealthAPI is the server's view of the normalizer. Implemented by
// *health.Service.
type HealthAPI interface {
	HeartRate(ctx context.Context, date string) ([]domain.HeartRateSample, error)
	HeartRateRaw(ctx context.Context, date string) ([]int, error)
	Steps(ctx context.Context, date string) (*domain.StepsDayRecord, error)
	Sleep(ctx context.Context, wakeDate string) (*domain.SleepSession, error)
	Stress(ctx context.Context, fromDate, toDate string) ([]domain.StressDayRecord, error)
	TrainingLoad(ctx context.Context, fromDate, toDate string) ([]domain.TrainingLoadRecord, error)
	PHN(ctx context.Context, fromDate, toDate string) ([]domain.PHNRecord, error)
	SportLoad(ctx context.Context, fromDate, toDate string) ([]domain.SportLoadRecord, error)
	VO2Max(ctx context.Context, fromDate, toDate string) ([]json.RawMessage, error)
}

// Cache is the server's view of the response cache. Implemented by
// *cache.Store. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, dataType, key string) ([]byte, bool, error)
	Put(ctx context.Context, dataType, key string, payload []byte) error
}

// Server serves the JSON API.
type Server struct {
	api    HealthAPI
	cache  Cache
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// New creates a Server. cache may be nil; loc nil means time.Local.
func New(api HealthAPI, cache Cache, logger *slog.Logger, loc *time.Location) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Server{
		api:    api,
		cache:  cache,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// Handler returns the routed HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/heart-rate/{date}", s.handleHeartRate).Methods("GET")
	api.HandleFunc("/heart-rate/{date}/raw", s.handleHeartRateRaw).Methods("GET")
	api.HandleFunc("/steps/{date}", s.handleSteps).Methods("GET")
	api.HandleFunc("/sleep/{date}", s.handleSleep).Methods("GET")
	api.HandleFunc("/stress/{date}", s.handleStress).Methods("GET")
	api.HandleFunc("/training-load/{date}", s.handleTrainingLoad).Methods("GET")
	api.HandleFunc("/phn/{date}", s.handlePHN).Methods("GET")
	api.HandleFunc("/sport-load/{date}", s.handleSportLoad).Methods("GET")
	api.HandleFunc("/vo2max/{date}", s.handleVO2Max).Methods("GET")
	api.HandleFunc("/summary/{date}", s.handleSummary).Methods("GET")

	return s.requestLogger(router)
}

// ListenAndServe runs the server on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) today() string {
	return s.now().In(s.loc).Format(dateLayout)
}

// fetchResult carries one fetched value plus whether it is empty. Empty
// results are served but never cached, so a day that later gets data is not
// stuck behind a cached nothing.
type fetchResult struct {
	value any
	empty bool
}

func (s *Server) cached(ctx context.Context, dataType, date string, fetch func(context.Context) (fetchResult, error)) (json.RawMessage, error) {
	cacheable := s.cache != nil && date != s.today()

	if cacheable {
		payload, ok, err := s.cache.Get(ctx, dataType, date)
		if err != nil {
			s.logger.Warn("cache read failed", "data_type", dataType, "key", date, "error", err)
		} else if ok {
			return payload, nil
		}
	}

	result, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(result.value)
	if err != nil {
		return nil, err
	}

	if cacheable && !result.empty {
		if err := s.cache.Put(ctx, dataType, date, payload); err != nil {
			s.logger.Warn("cache write failed", "data_type", dataType, "key", date, "error", err)
		}
	}
	return payload, nil
}

func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, dataType string, fetch func(context.Context, string) (fetchResult, error)) {
	date, ok := s.pathDate(w, r)
	if !ok {
		return
	}

	payload, err := s.cached(r.Context(), dataType, date, func(ctx context.Context) (fetchResult, error) {
		return fetch(ctx, date)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

func (s *Server) handleHeartRate(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "heart_rate", func(ctx context.Context, date string) (fetchResult, error) {
		samples, err := s.api.HeartRate(ctx, date)
		if err != nil {
			return fetchResult{}, err
		}
		if samples == nil {
			samples = []domain.HeartRateSample{}
		}
		return fetchResult{value: samples, empty: len(samples) == 0}, nil
	})
}

func (s *Server) handleHeartRateRaw(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "heart_rate_raw", func(ctx context.Context, date string) (fetchResult, error) {
		values, err := s.api.HeartRateRaw(ctx, date)
		if err != nil {
			return fetchResult{}, err
		}
		if values == nil {
			values = []int{}
		}
		return fetchResult{value: values, empty: len(values) == 0}, nil
	})
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "steps", func(ctx context.Context, date string) (fetchResult, error) {
		record, err := s.api.Steps(ctx, date)
		if err != nil {
			return fetchResult{}, err
		}
		return fetchResult{value: record, empty: record == nil}, nil
	})
}

func (s *Server) handleSleep(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "sleep", func(ctx context.Context, date string) (fetchResult, error) {
		session, err := s.api.Sleep(ctx, date)
		if err != nil {
			return fetchResult{}, err
		}
		return fetchResult{value: session, empty: session == nil}, nil
	})
}

func (s *Server) handleStress(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "stress", func(ctx context.Context, date string) (fetchResult, error) {
		records, err := s.api.Stress(ctx, date, date)
		if err != nil {
			return fetchResult{}, err
		}
		if records == nil {
			records = []domain.StressDayRecord{}
		}
		return fetchResult{value: records, empty: len(records) == 0}, nil
	})
}

func (s *Server) handleTrainingLoad(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "training_load", func(ctx context.Context, date string) (fetchResult, error) {
		records, err := s.api.TrainingLoad(ctx, date, date)
		if err != nil {
			return fetchResult{}, err
		}
		if records == nil {
			records = []domain.TrainingLoadRecord{}
		}
		return fetchResult{value: records, empty: len(records) == 0}, nil
	})
}

func (s *Server) handlePHN(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "phn", func(ctx context.Context, date string) (fetchResult, error) {
		records, err := s.api.PHN(ctx, date, date)
		if err != nil {
			return fetchResult{}, err
		}
		if records == nil {
			records = []domain.PHNRecord{}
		}
		return fetchResult{value: records, empty: len(records) == 0}, nil
	})
}

func (s *Server) handleSportLoad(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "sport_load", func(ctx context.Context, date string) (fetchResult, error) {
		records, err := s.api.SportLoad(ctx, date, date)
		if err != nil {
			return fetchResult{}, err
		}
		if records == nil {
			records = []domain.SportLoadRecord{}
		}
		return fetchResult{value: records, empty: len(records) == 0}, nil
	})
}

func (s *Server) handleVO2Max(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "vo2max", func(ctx context.Context, date string) (fetchResult, error) {
		items, err := s.api.VO2Max(ctx, date, date)
		if err != nil {
			return fetchResult{}, err
		}
		if items == nil {
			items = []json.RawMessage{}
		}
		return fetchResult{value: items, empty: len(items) == 0}, nil
	})
}

// daySummaryResponse is the combined view the dashboard loads in one request.
type daySummaryResponse struct {
	Date      string                   `json:"date"`
	HeartRate []domain.HeartRateSample `json:"heart_rate"`
	Steps     *domain.StepsDayRecord   `json:"steps"`
	Sleep     *domain.SleepSession     `json:"sleep"`
	Stress    []domain.StressDayRecord `json:"stress"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "summary", func(ctx context.Context, date string) (fetchResult, error) {
		resp := daySummaryResponse{
			Date:      date,
			HeartRate: []domain.HeartRateSample{},
			Stress:    []domain.StressDayRecord{},
		}

		hr, err := s.api.HeartRate(ctx, date)
		if err != nil {
			return fetchResult{}, err
		}
		if hr != nil {
			resp.HeartRate = hr
		}

		if resp.Steps, err = s.api.Steps(ctx, date); err != nil {
			return fetchResult{}, err
		}
		if resp.Sleep, err = s.api.Sleep(ctx, date); err != nil {
			return fetchResult{}, err
		}

		stress, err := s.api.Stress(ctx, date, date)
		if err != nil {
			return fetchResult{}, err
		}
		if stress != nil {
			resp.Stress = stress
		}

		empty := len(resp.HeartRate) == 0 && resp.Steps == nil && resp.Sleep == nil && len(resp.Stress) == 0
		return fetchResult{value: resp, empty: empty}, nil
	})
}

func (s *Server) pathDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(dateLayout, date); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date, want YYYY-MM-DD"})
		return "", false
	}
	return date, true
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the client error taxonomy onto HTTP statuses: bad
// credentials are the caller's problem, upstream API failures are a bad
// gateway, anything else is internal.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *zepp.AuthError
	var apiErr *zepp.APIError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
	}

	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
