package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/openalpha/venture-fund/api/handlers"
	"github.com/openalpha/venture-fund/api/middleware"
	"github.com/openalpha/venture-fund/api/types"
	"github.com/openalpha/venture-fund/api/websocket"
	"github.com/openalpha/venture-fund/metrics"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	wsServer   *websocket.Server
	config     *Config
	mockMode   bool

	// Services
	fundService     types.FundService
	positionService types.PositionService
	stakeService    types.StakeService

	// Handlers
	fundHandler     *handlers.FundHandler
	positionHandler *handlers.PositionHandler
	stakeHandler    *handlers.StakeHandler

	// Rate limiter
	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MockMode         bool
	DisableRateLimit bool // For testing purposes
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		MockMode:     false,
	}
}

// NewServer creates a new API server backed by the in-memory mock service
func NewServer(config *Config) *Server {
	mockService := NewMockService()
	s := NewServerWithServices(config, mockService, mockService, mockService)
	s.mockMode = true
	return s
}

// NewServerWithServices creates a new API server with custom services
func NewServerWithServices(config *Config, fundSvc types.FundService, positionSvc types.PositionService, stakeSvc types.StakeService) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	s := &Server{
		config:          config,
		wsServer:        websocket.NewServer(wsConfig),
		mockMode:        config.MockMode,
		fundService:     fundSvc,
		positionService: positionSvc,
		stakeService:    stakeSvc,
		rateLimiter:     rateLimiter,
	}

	s.fundHandler = handlers.NewFundHandler(s.fundService)
	s.positionHandler = handlers.NewPositionHandler(s.positionService)
	s.stakeHandler = handlers.NewStakeHandler(s.stakeService)

	return s
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/health", s.handleHealth)

	// Fund endpoints (read-only)
	mux.HandleFunc("/api/v1/funds", s.fundHandler.HandleFunds)
	mux.HandleFunc("/api/v1/funds/", s.handleFundRoutes)

	// Position endpoints (read-only)
	mux.HandleFunc("/api/v1/positions/", s.positionHandler.HandlePosition)

	// Account endpoints (read-only)
	mux.HandleFunc("/api/v1/accounts/", s.handleAccountRoutes)

	// WebSocket
	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware chain: CORS -> RateLimit -> Metrics -> Handler
	var handler http.Handler = metricsMiddleware(mux)
	if s.config.DisableRateLimit {
		handler = corsMiddleware(handler)
	} else {
		handler = corsMiddleware(
			middleware.RateLimitMiddleware(s.rateLimiter)(handler),
		)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub
	go s.wsServer.GetHub().Run()

	// Periodically push fund snapshots to subscribers
	go s.startFundBroadcaster()

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// WebSocketServer exposes the underlying websocket server so event feeds
// can push payout, contribution, and withdrawal updates.
func (s *Server) WebSocketServer() *websocket.Server {
	return s.wsServer
}

// startFundBroadcaster polls fund state and buffers snapshots for
// websocket subscribers. The hub coalesces snapshots per fund, so a
// short poll interval stays cheap.
func (s *Server) startFundBroadcaster() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		funds, err := s.fundService.GetFunds(context.Background())
		if err != nil {
			continue
		}
		for _, fund := range funds {
			s.wsServer.BroadcastFund(&websocket.FundMessage{
				FundID:           fund.FundID,
				Phase:            fund.Phase,
				TotalContributed: fund.TotalContributed,
				CumulativeProfit: fund.CumulativeProfit,
				Balance:          fund.Balance,
				PayoutsCount:     fund.PayoutsCount,
				Timestamp:        nowMillis(),
			})
		}
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "chain"
	modeDescription := "Serving state read from a running chain"
	if s.mockMode {
		mode = "mock"
		modeDescription = "Serving in-memory data for development/testing"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"timestamp":        time.Now().Unix(),
		"mode":             mode,
		"mode_description": modeDescription,
	})
}

// handleFundRoutes handles /api/v1/funds/{fundID}/* endpoints
func (s *Server) handleFundRoutes(w http.ResponseWriter, r *http.Request) {
	// Parse path: /api/v1/funds/{fundID} or /api/v1/funds/{fundID}/{endpoint}
	path := r.URL.Path[len("/api/v1/funds/"):]

	fundID := path
	endpoint := ""
	for i, c := range path {
		if c == '/' {
			fundID = path[:i]
			endpoint = path[i+1:]
			break
		}
	}

	if fundID == "" {
		writeError(w, http.StatusBadRequest, "Fund ID required")
		return
	}

	// Set fund ID in request for handlers
	r.Header.Set("X-Fund-ID", fundID)

	// Endpoints with a trailing account segment
	if account, ok := trimSegment(endpoint, "entitlement"); ok {
		r.Header.Set("X-Account-Address", account)
		s.fundHandler.GetEntitlement(w, r)
		return
	}
	if account, ok := trimSegment(endpoint, "stakes"); ok {
		r.Header.Set("X-Account-Address", account)
		s.stakeHandler.GetStake(w, r)
		return
	}
	if account, ok := trimSegment(endpoint, "discount"); ok {
		r.Header.Set("X-Account-Address", account)
		s.stakeHandler.GetDiscount(w, r)
		return
	}

	switch endpoint {
	case "":
		s.fundHandler.GetFund(w, r)
	case "payouts":
		s.fundHandler.GetPayouts(w, r)
	case "holders":
		s.fundHandler.GetHolders(w, r)
	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// handleAccountRoutes handles /api/v1/accounts/{address}/* endpoints
func (s *Server) handleAccountRoutes(w http.ResponseWriter, r *http.Request) {
	// Parse path: /api/v1/accounts/{address}/{endpoint}
	path := r.URL.Path[len("/api/v1/accounts/"):]

	address := path
	endpoint := ""
	for i, c := range path {
		if c == '/' {
			address = path[:i]
			endpoint = path[i+1:]
			break
		}
	}

	if address == "" {
		writeError(w, http.StatusBadRequest, "Account address required")
		return
	}

	// Set address in request for handlers
	r.Header.Set("X-Account-Address", address)

	switch endpoint {
	case "positions":
		s.positionHandler.GetAccountPositions(w, r)
	case "checkpoints":
		s.positionHandler.GetCheckpoints(w, r)
	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// trimSegment returns the remainder of path after "{segment}/", if path
// starts with that segment.
func trimSegment(path, segment string) (string, bool) {
	prefix := segment + "/"
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return path[len(prefix):], true
	}
	return "", false
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		timer := metrics.NewTimer()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.GetCollector().RecordAPIRequest(
			r.Method, r.URL.Path, fmt.Sprintf("%d", rec.status), timer.ElapsedMs(),
		)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Account-Address")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
