// Package mockserver serves an in-memory stand-in for the remote dishes
// service.
package mockserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/logger"
	"github.com/thomas-vilte/dishform/internal/models"
)

// dishRequest mirrors the three payload shapes in one struct. Variant
// fields are pointers so "absent" and "zero" stay distinct.
type dishRequest struct {
	Name            string   `json:"name" binding:"required"`
	PreparationTime string   `json:"preparation_time" binding:"required,len=8"`
	Type            string   `json:"type" binding:"required,oneof=pizza soup sandwich"`
	NoOfSlices      *int     `json:"no_of_slices,omitempty" binding:"omitempty,min=1"`
	Diameter        *float64 `json:"diameter,omitempty" binding:"omitempty,min=15"`
	SpicinessScale  *int     `json:"spiciness_scale,omitempty" binding:"omitempty,min=1,max=10"`
	SlicesOfBread   *int     `json:"slices_of_bread,omitempty" binding:"omitempty,min=1"`
}

// missingVariantField returns the first field required by the request's
// type that is absent.
func (r dishRequest) missingVariantField() string {
	switch models.DishType(r.Type) {
	case models.DishPizza:
		if r.NoOfSlices == nil {
			return string(models.FieldNoOfSlices)
		}
		if r.Diameter == nil {
			return string(models.FieldDiameter)
		}
	case models.DishSoup:
		if r.SpicinessScale == nil {
			return string(models.FieldSpicinessScale)
		}
	case models.DishSandwich:
		if r.SlicesOfBread == nil {
			return string(models.FieldSlicesOfBread)
		}
	}
	return ""
}

// Dish is a stored recipe.
type Dish struct {
	ID string `json:"id"`
	dishRequest
}

type Server struct {
	mu         sync.RWMutex
	dishes     []Dish
	failStatus int

	path   string
	engine *gin.Engine
}

type Option func(*Server)

// WithPath mounts the dishes endpoints under path instead of "dishes".
func WithPath(path string) Option {
	return func(s *Server) {
		if p := strings.Trim(path, "/"); p != "" {
			s.path = p
		}
	}
}

// WithFailStatus starts the server already failing with status.
func WithFailStatus(status int) Option {
	return func(s *Server) {
		s.failStatus = status
	}
}

func New(opts ...Option) *Server {
	s := &Server{path: "dishes"}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	dishes := r.Group("/" + s.path)
	dishes.Use(s.failure())
	dishes.HEAD("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	dishes.POST("", s.createDish)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// FailWith makes every dishes call answer status. Zero restores normal
// behaviour.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Dishes returns the stored recipes in arrival order.
func (s *Server) Dishes() []Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Dish, len(s.dishes))
	copy(out, s.dishes)
	return out
}

func (s *Server) failure() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.RLock()
		status := s.failStatus
		s.mu.RUnlock()

		if status == 0 {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodHead {
			c.AbortWithStatus(status)
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"message": http.StatusText(status)})
	}
}

func (s *Server) createDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid recipe",
			"error":   err.Error(),
		})
		return
	}

	if field := req.missingVariantField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "missing required fields",
			"field":   field,
		})
		return
	}

	dish := Dish{ID: uuid.NewString(), dishRequest: req}

	s.mu.Lock()
	s.dishes = append(s.dishes, dish)
	s.mu.Unlock()

	c.JSON(http.StatusOK, dish)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "mock request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return domainErrors.ErrMockServer.WithError(err).WithContext("addr", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return domainErrors.ErrMockServer.WithError(err).WithContext("addr", addr)
		}
		return nil
	}
}
