package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// Session lifecycle metrics
	CheckInsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gymclock_checkins_total",
			Help: "Total sessions opened by check-in",
		},
	)

	CheckOutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gymclock_checkouts_total",
			Help: "Total sessions closed by check-out",
		},
	)

	RejectedTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymclock_rejected_transitions_total",
			Help: "Check-in or check-out attempts rejected by the session state",
		},
		[]string{"reason"},
	)

	SessionActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymclock_session_active",
			Help: "1 while a session is open",
		},
	)

	SessionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gymclock_session_duration_seconds",
			Help:    "Length of completed sessions in seconds",
			Buckets: []float64{300, 900, 1800, 2700, 3600, 5400, 7200, 10800, 14400},
		},
	)
)

func init() {
	prometheus.MustRegister(
		CheckInsTotal,
		CheckOutsTotal,
		RejectedTransitions,
		SessionActive,
		SessionDuration,
	)
}

// Server is the metrics HTTP server
type Server struct {
	server *http.Server
	logger zerolog.Logger
}

func NewServer(addr string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting metrics server")
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
}

func (s *Server) Stop() error {
	s.logger.Info().Msg("Stopping metrics server")
	return s.server.Close()
}
