package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/mealframe/internal/logger"
	"github.com/julianstephens/mealframe/internal/stats"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleStats serves GET /api/v1/stats?days=N.
func (s *Server) handleStats(c echo.Context) error {
	days := s.config.DefaultDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "days must be an integer")
		}
		days = n
	}

	report, err := s.reporter.Report(c.Request().Context(), days)
	if err != nil {
		var verr *stats.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Error())
		}
		logger.Error("Failed to compute stats", "days", days, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute stats").SetInternal(err)
	}
	return c.JSON(http.StatusOK, report)
}

// errorHandler renders errors as {"detail": "..."}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		} else {
			detail = http.StatusText(code)
		}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, ErrorResponse{Detail: detail})
	}
	if writeErr != nil {
		logger.Warn("Failed to write error response", "error", writeErr)
	}
}
