package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ai-signal-analyzer/internal/analyzer"
	"ai-signal-analyzer/internal/heuristic"
	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/signal"
)

const (
	msgNoData         = "No data received"
	maxPayloadBytes   = 1 << 20
	DefaultHistoryMax = 20
)

// Handler registers routes on an Echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// ServiceInfo is reported by the descriptor and health endpoints.
type ServiceInfo struct {
	Service     string
	Version     string
	AIModel     string
	AIProvider  string
	APIEndpoint string
}

// SignalHandler serves the analyzer's HTTP API.
type SignalHandler struct {
	analyzer     interfaces.Analyzer
	history      interfaces.HistoryStore
	info         ServiceInfo
	defaultLimit int
	now          func() time.Time
}

var _ Handler = (*SignalHandler)(nil)

func NewSignalHandler(a interfaces.Analyzer, h interfaces.HistoryStore, info ServiceInfo, defaultLimit int) *SignalHandler {
	if defaultLimit <= 0 {
		defaultLimit = DefaultHistoryMax
	}
	return &SignalHandler{
		analyzer:     a,
		history:      h,
		info:         info,
		defaultLimit: defaultLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (h *SignalHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)
	e.POST("/analyze", h.Analyze)
	e.GET("/history", h.History)
	e.POST("/history", h.History)
	e.GET("/test", h.SelfTest)
	e.POST("/test", h.SelfTest)
}

func (h *SignalHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, ServiceDescriptor{
		Status:      "online",
		Service:     h.info.Service,
		Version:     h.info.Version,
		AIModel:     h.info.AIModel,
		APIEndpoint: h.info.APIEndpoint,
		Endpoints: map[string]string{
			"/analyze": "POST - Analyze trading signal",
			"/history": "GET - View recent analyses",
			"/health":  "GET - Service health check",
			"/test":    "GET - Test with sample data",
			"/metrics": "GET - Prometheus metrics",
		},
	})
}

func (h *SignalHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   h.now(),
		AIProvider:  h.info.AIProvider,
		APIEndpoint: h.info.APIEndpoint,
	})
}

// Analyze accepts a webhook payload in either the nested or the legacy flat
// shape. Remote model failures degrade to the heuristic and still return 200.
func (h *SignalHandler) Analyze(c echo.Context) error {
	ctx := c.Request().Context()

	var body io.Reader
	if rb := c.Request().Body; rb != nil {
		body = http.MaxBytesReader(c.Response(), rb, maxPayloadBytes)
	}
	payload, err := decodePayload(body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.Warn(ctx, "Rejected oversized webhook payload", "limit_bytes", tooLarge.Limit)
		return ErrorJSON(c, http.StatusRequestEntityTooLarge, "Payload too large")
	}
	if err != nil {
		logger.Warn(ctx, "Rejected webhook payload", "error", err)
		return ErrorJSON(c, http.StatusBadRequest, msgNoData)
	}

	rec, err := h.analyzer.Analyze(ctx, payload)
	if errors.Is(err, analyzer.ErrEmptyPayload) {
		return ErrorJSON(c, http.StatusBadRequest, msgNoData)
	}
	if err != nil {
		return AppErrorResponse(c, InternalError(err.Error()).WithError(err))
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{Success: true, AnalysisRecord: *rec})
}

func (h *SignalHandler) History(c echo.Context) error {
	q := HistoryQuery{defaultLimit: h.defaultLimit}
	if appErr := ReadAndValidateQuery(c, &q); appErr != nil {
		return AppErrorResponse(c, appErr)
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Total:    h.history.Len(),
		Analyses: h.history.Recent(q.Limit),
	})
}

// SelfTest runs the pipeline on a built-in payload without recording it.
func (h *SignalHandler) SelfTest(c echo.Context) error {
	sample := signal.SamplePayload()

	_, verdict, err := h.analyzer.Assess(c.Request().Context(), sample)
	if err != nil {
		return AppErrorResponse(c, InternalError(err.Error()).WithError(err))
	}

	note := "Analysis produced by " + verdict.Model
	if verdict.Model == heuristic.Model {
		note = "Remote model unavailable - logic-based fallback used"
	}

	return c.JSON(http.StatusOK, SelfTestResponse{
		Test:       "successful",
		SampleData: sample,
		Analysis:   verdict,
		Note:       note,
	})
}

// decodePayload reads a JSON object. Empty bodies, non-objects and {} are
// rejected; read errors such as *http.MaxBytesError are returned unchanged.
func decodePayload(body io.Reader) (map[string]any, error) {
	if body == nil {
		return nil, errors.New("missing body")
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errors.New("empty object")
	}
	return payload, nil
}
