// Package server serves a budget document over HTTP for local chart sessions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/source"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr string
	// File is the budget document to serve. Empty serves SampleBudget.
	File         string
	EventsBuffer int
	// Debounce coalesces bursts of file writes before a reload.
	Debounce time.Duration
}

// SampleBudget is served when no file is configured.
var SampleBudget = []model.CategoryDatum{
	{Title: "Eat out", Budget: 25},
	{Title: "Rent", Budget: 375},
	{Title: "Grocery", Budget: 110},
	{Title: "Utilities", Budget: 90},
	{Title: "Transport", Budget: 60},
	{Title: "Savings", Budget: 150},
	{Title: "Entertainment", Budget: 45},
}

// Event is emitted whenever the served document changes.
type Event struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Categories int       `json:"categories"`
	Total      float64   `json:"total"`
}

// Status is served at /v1/status.
type Status struct {
	// InstanceID is regenerated on every start.
	InstanceID      string    `json:"instance_id"`
	StartedAt       time.Time `json:"started_at"`
	LastLoadAt      time.Time `json:"last_load_at"`
	LoadCount       int64     `json:"load_count"`
	File            string    `json:"file,omitempty"`
	Categories      int       `json:"categories"`
	Total           float64   `json:"total"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service holds the served document and its HTTP API.
type Service struct {
	cfg    Config
	loader *source.FileSource

	mu          sync.RWMutex
	instanceID  string
	startedAt   time.Time
	lastLoadAt  time.Time
	loadCount   int64
	lastError   string
	doc         model.BudgetDocument
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	s := &Service{
		cfg:        cfg,
		instanceID: uuid.NewString(),
		startedAt:  time.Now(),
		subs:       make(map[int]chan Event),
	}
	if cfg.File != "" {
		s.loader = source.NewFileSource(cfg.File)
	} else {
		s.setDocument(SampleBudget)
	}
	return s
}

// Run serves HTTP until ctx is canceled. A configured file is loaded first
// and reloaded whenever it changes.
func (s *Service) Run(ctx context.Context) error {
	if s.loader != nil {
		if err := s.Reload(ctx); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs on an existing listener until ctx is canceled.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("serving budget document", "addr", ln.Addr().String(), "file", s.cfg.File)
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if s.loader != nil {
		g.Go(func() error {
			return s.watch(gctx)
		})
	}

	return g.Wait()
}

func (s *Service) watch(ctx context.Context) error {
	changes, err := s.loader.Watch(ctx, s.cfg.Debounce)
	if err != nil {
		// Serving still works without live reload.
		slog.Warn("live reload disabled", "file", s.cfg.File, "err", err)
		return nil
	}
	for range changes {
		if err := s.Reload(ctx); err != nil {
			slog.Warn("reload failed, keeping previous document", "file", s.cfg.File, "err", err)
		}
	}
	return nil
}

// Reload re-reads the configured file. On failure the previous document
// stays in place.
func (s *Service) Reload(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}
	categories, err := s.loader.Fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return err
	}
	s.setDocument(categories)
	return nil
}

func (s *Service) setDocument(categories []model.CategoryDatum) {
	now := time.Now()

	s.mu.Lock()
	s.doc = model.BudgetDocument{MyBudget: append([]model.CategoryDatum{}, categories...)}
	s.lastLoadAt = now
	s.loadCount++
	s.lastError = ""
	s.nextEventID++
	ev := Event{
		ID:         s.nextEventID,
		Type:       "document",
		Timestamp:  now,
		Categories: len(categories),
		Total:      model.TotalBudget(categories),
	}
	s.mu.Unlock()

	s.publishEvent(ev)
}

// Document returns a copy of the served document.
func (s *Service) Document() model.BudgetDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.BudgetDocument{MyBudget: append([]model.CategoryDatum{}, s.doc.MyBudget...)}
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
		InstanceID:      s.instanceID,
		StartedAt:       s.startedAt,
		LastLoadAt:      s.lastLoadAt,
		LoadCount:       s.loadCount,
		File:            s.cfg.File,
		Categories:      len(s.doc.MyBudget),
		Total:           model.TotalBudget(s.doc.MyBudget),
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

// Handler returns the router with all routes and middleware.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Browser dashboards fetch the document cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get(source.DefaultPath, s.handleDocument)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	_ = json.NewEncoder(w).Encode(s.Document())
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
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

	st := s.snapshotStatus()
	writeSSE(w, Event{
		Type:       "snapshot",
		Timestamp:  time.Now(),
		Categories: st.Categories,
		Total:      st.Total,
	})
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
