// Package daemon provides the long-running reports directory watcher service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dave-doty/aggie-unterprise/internal/clean"
	"github.com/dave-doty/aggie-unterprise/internal/model"
	"github.com/dave-doty/aggie-unterprise/internal/pipeline"
	"github.com/dave-doty/aggie-unterprise/internal/store"
)

// Config controls the watcher runtime behavior.
type Config struct {
	Dir          string
	Cleaner      clean.Cleaner
	UseCache     bool
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact view of the reports directory for status and
// event payloads. Totals come from the most recent report.
type Snapshot struct {
	At            time.Time `json:"at"`
	Reports       int       `json:"reports"`
	Projects      int       `json:"projects"`
	LatestDate    string    `json:"latest_date,omitempty"`
	TotalExpenses float64   `json:"total_expenses"`
	TotalBalance  float64   `json:"total_balance"`
	TotalBudget   float64   `json:"total_budget"`
}

// Delta captures snapshot movement between polls.
type Delta struct {
	Reports       int     `json:"reports"`
	Projects      int     `json:"projects"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalBalance  float64 `json:"total_balance"`
}

func (d Delta) isZero() bool {
	return d.Reports == 0 &&
		d.Projects == 0 &&
		d.TotalExpenses == 0 &&
		d.TotalBalance == 0
}

// Event is emitted whenever the directory snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// ReportInfo is one entry in the /v1/reports listing.
type ReportInfo struct {
	Date          string  `json:"date"`
	FilePath      string  `json:"file_path"`
	Projects      int     `json:"projects"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalBalance  float64 `json:"total_balance"`
	TotalBudget   float64 `json:"total_budget"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Dir             string    `json:"dir"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the watcher runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	reports     []ReportInfo
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new watcher service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/reports", s.handleReports)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("watch http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	summaries, err := s.loadSummaries()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		log.Printf("aggie watch poll error: %v", err)
		return
	}

	now := time.Now()
	snap := snapshotFromSummaries(summaries, now)
	reports := reportList(summaries)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.reports = reports
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "report_change",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) loadSummaries() ([]model.Summary, error) {
	opts := pipeline.Options{
		Dir:     s.cfg.Dir,
		Cleaner: s.cfg.Cleaner,
	}

	if s.cfg.UseCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			defer func() { _ = cache.Close() }()
			cr, loadErr := pipeline.LoadWithCache(opts, cache, nil)
			if loadErr == nil {
				return cr.Summaries, nil
			}
		}
	}

	result, err := pipeline.Load(opts)
	if err != nil {
		return nil, err
	}
	return result.Summaries, nil
}

// snapshotFromSummaries summarizes the newest report. Summaries arrive
// sorted newest first.
func snapshotFromSummaries(summaries []model.Summary, at time.Time) Snapshot {
	snap := Snapshot{At: at, Reports: len(summaries)}
	if len(summaries) == 0 {
		return snap
	}

	latest := summaries[0]
	total := model.Totals(latest.Records)
	snap.Projects = len(latest.Records)
	snap.LatestDate = latest.DateString()
	snap.TotalExpenses = total.Expenses
	snap.TotalBalance = total.Balance
	snap.TotalBudget = total.Budget
	return snap
}

func reportList(summaries []model.Summary) []ReportInfo {
	reports := make([]ReportInfo, 0, len(summaries))
	for _, s := range summaries {
		total := model.Totals(s.Records)
		reports = append(reports, ReportInfo{
			Date:          s.DateString(),
			FilePath:      s.FilePath,
			Projects:      len(s.Records),
			TotalExpenses: total.Expenses,
			TotalBalance:  total.Balance,
			TotalBudget:   total.Budget,
		})
	}
	return reports
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Reports:       curr.Reports - prev.Reports,
		Projects:      curr.Projects - prev.Projects,
		TotalExpenses: curr.TotalExpenses - prev.TotalExpenses,
		TotalBalance:  curr.TotalBalance - prev.TotalBalance,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Dir:             s.cfg.Dir,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleReports(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	reports := make([]ReportInfo, len(s.reports))
	copy(reports, s.reports)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reports)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
