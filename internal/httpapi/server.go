// Package httpapi exposes the read/refresh-combined query surface.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"MarketAnalyzer/internal/metrics"
	"MarketAnalyzer/internal/service"
)

// Request parameter defaults, matching the dashboard's standing query.
const (
	defaultTickers  = "SPY,TIP"
	defaultPeriod   = "11mo"
	defaultInterval = "1d"
	defaultSource   = "spy"
)

// Server routes HTTP requests to the cache-and-signal engine.
type Server struct {
	svc     *service.Service
	metrics *metrics.Metrics
	router  *mux.Router
}

// NewServer builds the router over the given service.
func NewServer(svc *service.Service, m *metrics.Metrics) *Server {
	s := &Server{svc: svc, metrics: m, router: mux.NewRouter()}

	s.router.HandleFunc("/prices", s.handlePrices).Methods(http.MethodGet)
	s.router.HandleFunc("/dividend-yield", s.handleDividendYield).Methods(http.MethodGet)
	s.router.HandleFunc("/risk", s.handleRisk).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tickers := q.Get("tickers")
	if tickers == "" {
		tickers = defaultTickers
	}
	periodStr := q.Get("period")
	if periodStr == "" {
		periodStr = defaultPeriod
	}
	interval := q.Get("interval")
	if interval == "" {
		interval = defaultInterval
	}

	res, err := s.svc.GetPrices(r.Context(), strings.Split(tickers, ","), periodStr, interval)
	if err != nil {
		s.writeError(w, "prices", err)
		return
	}
	s.writeJSON(w, "prices", res)
}

func (s *Server) handleDividendYield(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	periodStr := q.Get("period")
	if periodStr == "" {
		periodStr = defaultPeriod
	}
	source := q.Get("source")
	if source == "" {
		source = defaultSource
	}

	res, err := s.svc.GetDividendYield(r.Context(), periodStr, source)
	if err != nil {
		s.writeError(w, "dividend-yield", err)
		return
	}
	s.writeJSON(w, "dividend-yield", res)
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	periodStr := r.URL.Query().Get("period")
	if periodStr == "" {
		periodStr = defaultPeriod
	}

	report, err := s.svc.RiskReport(r.Context(), periodStr)
	if err != nil {
		s.writeError(w, "risk", err)
		return
	}
	s.writeJSON(w, "risk", report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) writeJSON(w http.ResponseWriter, endpoint string, v any) {
	s.metrics.RequestsTotal.WithLabelValues(endpoint, "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode %s response: %v", endpoint, err)
	}
}

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, endpoint string, err error) {
	log.Printf("[ERROR] %s: %v", endpoint, err)
	s.metrics.RequestsTotal.WithLabelValues(endpoint, "500").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorResponse{Error: true, Message: err.Error()})
}
