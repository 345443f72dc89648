package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/manager"
	"github.com/NCATS-Tangerine/rhea-beacon/internal/metrics"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/model"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Beacon is the set of operations served over HTTP.
type Beacon interface {
	GetConcepts(ctx context.Context, req service.ConceptsRequest) ([]model.Concept, error)
	GetConceptDetails(ctx context.Context, conceptID string) (*model.ConceptWithDetails, error)
	GetExactMatches(ctx context.Context, ids []string) ([]model.ExactMatch, error)
	GetStatements(ctx context.Context, req service.StatementsRequest) ([]model.Statement, error)
	GetStatementDetails(ctx context.Context, statementID string, keywords []string, offset, size int) (*model.StatementWithDetails, error)
	GetPredicates(ctx context.Context) ([]model.Predicate, error)
	GetCategories(ctx context.Context) ([]model.ConceptCategory, error)
	GetKnowledgeMap(ctx context.Context) ([]model.KnowledgeMapStatement, error)
}

// DatasetStatuser reports the state of the reference tables.
type DatasetStatuser interface {
	Status() []manager.DatasetStatus
}

// Options configures the HTTP surface.
type Options struct {
	BasePath    string
	CORSOrigins []string
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	// Gatherer backs /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
}

// Server holds the state for the REST API server.
type Server struct {
	beacon   Beacon
	datasets DatasetStatuser
	router   *gin.Engine
	opts     Options
	logger   *zap.Logger
}

// NewServer creates a new Server instance.
func NewServer(beacon Beacon, datasets DatasetStatuser, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(opts.Logger), countRequests(opts.Metrics))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	s := &Server{
		beacon:   beacon,
		datasets: datasets,
		router:   r,
		opts:     opts,
		logger:   opts.Logger,
	}
	s.setupRoutes()
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr), zap.String("base_path", s.opts.BasePath))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	g := s.router.Group(s.opts.BasePath)
	g.GET("/health", s.healthCheck)
	g.GET("/concepts", s.handleConcepts)
	g.GET("/concepts/:conceptId", s.handleConceptDetails)
	g.GET("/exactmatches", s.handleExactMatches)
	g.GET("/statements", s.handleStatements)
	g.GET("/statements/:statementId", s.handleStatementDetails)
	g.GET("/predicates", s.handlePredicates)
	g.GET("/categories", s.handleCategories)
	g.GET("/kmap", s.handleKnowledgeMap)
	if s.opts.Gatherer != nil {
		g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	var datasets []manager.DatasetStatus
	if s.datasets != nil {
		datasets = s.datasets.Status()
	}
	if datasets == nil {
		datasets = []manager.DatasetStatus{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "datasets": datasets})
}
