package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ai-signal-analyzer/internal/types"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

type AnalyzeResponse struct {
	Success bool `json:"success"`
	types.AnalysisRecord
}

type HistoryResponse struct {
	Total    int                    `json:"total"`
	Analyses []types.AnalysisRecord `json:"analyses"`
}

type SelfTestResponse struct {
	Test       string         `json:"test"`
	SampleData map[string]any `json:"sample_data"`
	Analysis   types.Verdict  `json:"ai_analysis"`
	Note       string         `json:"note"`
}

type ServiceDescriptor struct {
	Status      string            `json:"status"`
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	AIModel     string            `json:"ai_model"`
	APIEndpoint string            `json:"api_endpoint"`
	Endpoints   map[string]string `json:"endpoints"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	AIProvider  string    `json:"ai_provider"`
	APIEndpoint string    `json:"api_endpoint"`
}

// ErrorJSON writes {success:false, error:message}.
func ErrorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Success: false, Error: message})
}

// AppErrorResponse writes err as JSON, using its status when it is an AppError
// and 500 otherwise.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorResponse{Success: false, Error: appErr.Message, Details: appErr.Details})
	}
	return ErrorJSON(c, http.StatusInternalServerError, err.Error())
}

// HTTPErrorHandler renders framework errors (404, 405, bind failures) in the
// same shape as handler errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = ErrorJSON(c, he.Code, msg)
		return
	}
	_ = AppErrorResponse(c, err)
}
