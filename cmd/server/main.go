package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bedrock-proxy-api/internal/config"
	"bedrock-proxy-api/internal/middleware"
	"bedrock-proxy-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.ConfigureLogging(cfg)

	// Initialize dependencies
	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := newRouter(cfg, container)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s (%s mode)", cfg.Port, config.GetDeploymentMode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newRouter wires the middleware stack and routes around the shared
// generate handler.
func newRouter(cfg *config.Config, container *server.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"model_id":  cfg.Bedrock.ModelID,
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// The local server reuses the Lambda handler by translating the
		// HTTP request into the API Gateway trigger envelope.
		generate := func(c *gin.Context) {
			var body []byte
			if c.Request.Body != nil {
				body, _ = io.ReadAll(c.Request.Body)
			}

			resp := container.Handler.Handle(c.Request.Context(), events.APIGatewayProxyRequest{
				HTTPMethod: c.Request.Method,
				Headers:    singleValueHeaders(c.Request.Header),
				Body:       string(body),
			})

			for key, value := range resp.Headers {
				c.Header(key, value)
			}
			c.String(resp.StatusCode, resp.Body)
		}

		v1.POST("/generate", generate)
		v1.OPTIONS("/generate", generate)
	}

	return router
}

func singleValueHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	return headers
}
