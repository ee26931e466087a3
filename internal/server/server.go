package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kobzev/LykkeWalletAPI/internal/auth"
)

// Server represents the HTTP server
type Server struct {
	logger *zap.Logger
	gate   *auth.Gate
}

// NewServer creates a new HTTP server
func NewServer(logger *zap.Logger, gate *auth.Gate) *Server {
	return &Server{
		logger: logger,
		gate:   gate,
	}
}

// Router creates a new HTTP router
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(ginzap.Ginzap(s.logger, "2006-01-02T15:04:05Z07:00", true))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))
	router.Use(cors.Default())
	router.Use(requestIDMiddleware())
	router.Use(auth.Middleware(s.gate))

	// Add health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Add API routes
	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			client := v1.Group("/client", auth.RequireAuthenticated())
			{
				client.GET("/me", s.handleGetMe)
			}
		}
	}

	return router
}

// requestIDMiddleware assigns each request an id, honouring one the
// caller already set.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// handleGetMe returns the identity the gate resolved for this request.
func (s *Server) handleGetMe(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		// RequireAuthenticated already gates this route; reaching here
		// without a principal is a routing bug.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, principal)
}
