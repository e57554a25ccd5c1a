package server

import (
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/imagehost"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxImageBytes = 10 << 20

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server is the HTTP side-car next to the gRPC API.
type Server struct {
	router   *gin.Engine
	http     *http.Server
	uploader imagehost.Uploader
	checks   map[string]HealthCheck
	logger   logger.ZapLogger
}

func NewServer(uploader imagehost.Uploader, checks map[string]HealthCheck, log logger.ZapLogger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:   router,
		uploader: uploader,
		checks:   checks,
		logger:   log,
	}
	s.http = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.POST("/upload-image", s.uploadImage)
	}
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	failed := gin.H{}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "failed": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tagro-storefront",
	})
}

type uploadRequest struct {
	Image string `json:"image"`
}

// uploadImage takes either a multipart file in the "image" field or a JSON
// body {"image": "<base64>"}; data URL prefixes are accepted.
func (s *Server) uploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)

	var data []byte
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image data is required."})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
	} else {
		var req uploadRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image data is required."})
			return
		}
		raw := req.Image
		if i := strings.Index(raw, ";base64,"); i >= 0 {
			raw = raw[i+len(";base64,"):]
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image must be base64 encoded."})
			return
		}
		data = decoded
	}

	url, err := s.uploader.Upload(c.Request.Context(), data)
	if err != nil {
		status := http.StatusInternalServerError
		if apperror.Is(err, apperror.KindValidation) {
			status = http.StatusBadRequest
		} else if apperror.Is(err, apperror.KindExternal) {
			status = http.StatusBadGateway
		}
		s.logger.Error("image upload failed", zap.Error(err))
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
	if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
