package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	customMiddleware "github.com/peachstatevotes/election-data-api/internal/infrastructure/httpserver/middleware"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	// Rate limiting for the public API surface.
	RateLimitRPS   float64
	RateLimitBurst int
}

type ServerDeps struct {
	DatasetService ports.DatasetService
	FinanceService ports.FinanceService
	NewsService    ports.NewsService
	FeedProxy      ports.FeedProxy
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	datasetSvc     ports.DatasetService
	financeSvc     ports.FinanceService
	newsSvc        ports.NewsService
	feedProxy      ports.FeedProxy
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		datasetSvc:     deps.DatasetService,
		financeSvc:     deps.FinanceService,
		newsSvc:        deps.NewsService,
		feedProxy:      deps.FeedProxy,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
