package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/covid-overview/logmodule"
	"github.com/bitmark-inc/covid-overview/overview"
	"github.com/bitmark-inc/covid-overview/render"
)

// Pinger - ping a backing database
type Pinger interface {
	Ping() error
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	overview *overview.Service
	charts   *render.ChartRenderer

	// overlays of the last successful run
	layer *render.MapLayer

	// one pipeline run at a time
	runLock sync.Mutex

	defaultQuery string

	// optional, checked by healthz
	pinger Pinger
}

// NewServer new instance of server
func NewServer(
	service *overview.Service,
	charts *render.ChartRenderer,
	defaultQuery string,
	pinger Pinger) *Server {
	return &Server{
		overview:     service,
		charts:       charts,
		layer:        render.NewMapLayer(),
		defaultQuery: defaultQuery,
		pinger:       pinger,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Origin", "Accept-Language"},
		ExposeHeaders:   []string{"Content-Length"},
		AllowAllOrigins: true,
		MaxAge:          12 * time.Hour,
	}))
	{
		apiRoute.GET("/information", s.information)
		apiRoute.GET("/overview", s.getOverview)
		apiRoute.GET("/map", s.getMap)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.WithField("prefix", "gin").Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	if s.pinger != nil {
		err := s.pinger.Ping()
		if shouldInterupt(err, c) {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"default_query": s.defaultQuery,
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
