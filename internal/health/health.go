package health

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status — агрегированное состояние компонента.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Check — результат одной проверки.
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Report — полный ответ /healthz.
type Report struct {
	Status        Status    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Checks        []Check   `json:"checks,omitempty"`
	Version       string    `json:"version,omitempty"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// CheckFunc проверяет один компонент; nil означает "здоров".
type CheckFunc func() error

// Handler агрегирует проверки компонентов в /healthz и /readyz.
type Handler struct {
	mu        sync.RWMutex
	checks    map[string]CheckFunc
	version   string
	startTime time.Time
}

// NewHandler создаёт health handler с переданной версией сборки.
func NewHandler(version string) *Handler {
	return &Handler{
		checks:    make(map[string]CheckFunc),
		version:   version,
		startTime: time.Now(),
	}
}

// Register добавляет именованную проверку компонента.
func (h *Handler) Register(name string, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = fn
}

func (h *Handler) run() []Check {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	fns := make(map[string]CheckFunc, len(h.checks))
	for name, fn := range h.checks {
		fns[name] = fn
	}
	h.mu.RUnlock()

	sort.Strings(names)

	checks := make([]Check, 0, len(names))
	for _, name := range names {
		start := time.Now()
		err := fns[name]()
		check := Check{
			Name:       name,
			Status:     StatusHealthy,
			DurationMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		}
		checks = append(checks, check)
	}
	return checks
}

// ServeHTTP обрабатывает /healthz: полный отчёт со статусом 503 при сбое.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	checks := h.run()

	overall := StatusHealthy
	for _, check := range checks {
		if check.Status == StatusUnhealthy {
			overall = StatusUnhealthy
			break
		}
	}

	report := Report{
		Status:        overall,
		Timestamp:     time.Now(),
		Checks:        checks,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	statusCode := http.StatusOK
	if overall == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(report)
}

// ReadinessHandler отвечает коротко: ready/not ready.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, _ *http.Request) {
	for _, check := range h.run() {
		if check.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LivenessHandler всегда отвечает 200.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
