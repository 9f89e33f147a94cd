// Package http exposes the simulation core and scenario management over a
// JSON API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/dripsim-backend/internal/domain"
	"github.com/simaogato/dripsim-backend/internal/usecase/scenario"
	"github.com/simaogato/dripsim-backend/internal/usecase/simulation"
)

// Router wires all handlers.
func Router(scenarioSvc *scenario.Service, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logMiddleware(logger))

	api := r.Group("/api/v1")
	api.POST("/simulate", handleSimulate)
	api.POST("/scenarios", func(c *gin.Context) {
		handleSaveScenario(c, scenarioSvc)
	})
	api.GET("/scenarios", func(c *gin.Context) {
		handleListScenarios(c, scenarioSvc)
	})
	api.GET("/scenarios/:id", func(c *gin.Context) {
		handleGetScenario(c, scenarioSvc)
	})
	api.DELETE("/scenarios/:id", func(c *gin.Context) {
		handleDeleteScenario(c, scenarioSvc)
	})
	api.POST("/scenarios/:id/run", func(c *gin.Context) {
		handleRunScenario(c, scenarioSvc)
	})
	return r
}

func handleSimulate(c *gin.Context) {
	var assumptions domain.Assumptions
	if err := c.ShouldBindJSON(&assumptions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := simulation.Run(assumptions)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type saveScenarioRequest struct {
	Name        string             `json:"name" binding:"required"`
	Assumptions domain.Assumptions `json:"assumptions"`
}

func handleSaveScenario(c *gin.Context, svc *scenario.Service) {
	var req saveScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := svc.Save(c.Request.Context(), scenario.SaveScenarioInput{
		Name:        req.Name,
		Assumptions: req.Assumptions,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func handleListScenarios(c *gin.Context, svc *scenario.Service) {
	scenarios, err := svc.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if scenarios == nil {
		scenarios = []*domain.Scenario{}
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

func handleGetScenario(c *gin.Context, svc *scenario.Service) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, found)
}

func handleDeleteScenario(c *gin.Context, svc *scenario.Service) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func handleRunScenario(c *gin.Context, svc *scenario.Service) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := svc.Run(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario id"})
		return uuid.Nil, false
	}
	return id, true
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var invalid *domain.InvalidAssumptionsError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrScenarioNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func logMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}
}
