package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/export"
	"SignalDeck/internal/handler/push"
	"SignalDeck/internal/mode"
	icache "SignalDeck/internal/service/cache"
	"SignalDeck/internal/service/ratelimit"
	"SignalDeck/internal/usecase"
	xhttp "SignalDeck/pkg/http"
	xlogger "SignalDeck/pkg/logger"
)

const (
	cacheKeySignals = "signals"
	cacheKeyStats   = "statistics"
)

// DashboardHandler exposes the signal pipeline to the browser dashboard.
type DashboardHandler struct {
	logger     *xlogger.Logger
	refresher  *usecase.Refresher
	pipeline   *usecase.SignalPipeline
	controller *mode.Controller
	status     *mode.StatusBoard
	creds      repository.CredentialStore
	notifier   repository.Notifier
	hub        *push.Hub
	cache      icache.BytesCache
	cacheTTL   time.Duration
	rl         *ratelimit.Limiter
}

// NewDashboardHandler wires the HTTP surface.
func NewDashboardHandler(
	logger *xlogger.Logger,
	refresher *usecase.Refresher,
	pipeline *usecase.SignalPipeline,
	controller *mode.Controller,
	status *mode.StatusBoard,
	creds repository.CredentialStore,
	notifier repository.Notifier,
	hub *push.Hub,
) *DashboardHandler {
	if notifier == nil {
		notifier = repository.NopNotifier{}
	}
	return &DashboardHandler{
		logger:     logger,
		refresher:  refresher,
		pipeline:   pipeline,
		controller: controller,
		status:     status,
		creds:      creds,
		notifier:   notifier,
		hub:        hub,
		rl:         ratelimit.New(),
	}
}

// SetCache enables the short-TTL response cache.
func (h *DashboardHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	h.cacheTTL = ttl
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signals", h.Signals)
	g.GET("/statistics", h.Statistics)
	g.GET("/status", h.Status)
	g.POST("/scan", h.Scan)
	g.POST("/refresh", h.Refresh)
	g.PUT("/credentials", h.Credentials)
	g.GET("/export/csv", h.ExportCSV)

	if h.hub != nil {
		e.GET("/ws", echo.WrapHandler(h.hub.Handler()))
	}
}

// Signals returns the current ordered signal sequence.
func (h *DashboardHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !req.Refresh {
		if cached, ok := h.fromCache(cacheKeySignals); ok {
			var signals []models.Signal
			if json.Unmarshal(cached, &signals) == nil {
				return xhttp.SuccessResponse(c, signals)
			}
		}
	}

	signals := h.refresher.Signals(c.Request().Context())
	h.toCache(cacheKeySignals, signals)
	return xhttp.SuccessResponse(c, signals)
}

// Statistics returns the derived summary counts.
func (h *DashboardHandler) Statistics(c echo.Context) error {
	if cached, ok := h.fromCache(cacheKeyStats); ok {
		var stats models.Statistics
		if json.Unmarshal(cached, &stats) == nil {
			return xhttp.SuccessResponse(c, stats)
		}
	}

	stats := h.refresher.Statistics(c.Request().Context())
	h.toCache(cacheKeyStats, stats)
	return xhttp.SuccessResponse(c, stats)
}

// Status reports the mode and the three connectivity indicators.
func (h *DashboardHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"mode":     h.controller.Mode(),
		"channels": h.status.Snapshot(),
		"clients":  h.clientCount(),
	})
}

// Scan triggers a manual market scan, fire-and-forget.
func (h *DashboardHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":scan", 3, 0.2) {
		h.logger.Warn("scan rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("manual scan rate limited"))
	}

	h.logger.Info("manual scan requested", xlogger.String("source", req.Source))
	accepted := h.pipeline.TriggerScan(c.Request().Context())
	return xhttp.AcceptedResponse(c, map[string]bool{"accepted": accepted})
}

// Refresh starts a full refresh cycle; an in-flight cycle drops the
// request.
func (h *DashboardHandler) Refresh(c echo.Context) error {
	ran := h.refresher.Refresh(c.Request().Context())
	return xhttp.AcceptedResponse(c, map[string]bool{"started": ran})
}

// Credentials stores the remote secrets and re-arbitrates the mode
// immediately.
func (h *DashboardHandler) Credentials(c echo.Context) error {
	req := &models.CredentialsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.creds.Set(repository.CredAccessKey, req.AccessKey); err != nil {
		h.logger.Error("credentials save failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not persist credentials").WithError(err))
	}
	if err := h.creds.Set(repository.CredSecretKey, req.SecretKey); err != nil {
		h.logger.Error("credentials save failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not persist credentials").WithError(err))
	}

	m := h.controller.DetermineMode()
	if m == models.ModeLive {
		h.notifier.Notify("Credentials saved! Connected to live data.", repository.LevelSuccess)
	} else {
		h.notifier.Notify("Failed to connect with the saved credentials.", repository.LevelError)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"mode": m})
}

// ExportCSV downloads the current sequence as CSV.
func (h *DashboardHandler) ExportCSV(c echo.Context) error {
	signals := h.refresher.Signals(c.Request().Context())

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, signals); err != nil {
		h.logger.Error("csv export failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("export failed").WithError(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="signals.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *DashboardHandler) fromCache(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache get error", xlogger.Error(err))
		return nil, false
	}
	return b, ok
}

func (h *DashboardHandler) toCache(key string, v interface{}) {
	if h.cache == nil || h.cacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, h.cacheTTL); err != nil {
		h.logger.Warn("cache set error", xlogger.Error(err))
	}
}

func (h *DashboardHandler) clientCount() int {
	if h.hub == nil {
		return 0
	}
	return h.hub.ClientCount()
}
