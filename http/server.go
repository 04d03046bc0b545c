package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shaulkr/ragcontent"
	"github.com/shaulkr/ragcontent/notify"
)

// actorHeader carries the acting identity on inbound requests. Absent means
// the anonymous reader.
const actorHeader = "X-Wiki-Actor"

// Server serves the content retrieval API and the content-changing event
// webhook. Each request is an independent, stateless unit of work.
type Server struct {
	echo      *echo.Echo
	pages     ragcontent.PageService
	perms     ragcontent.PermissionChecker
	filter    *ragcontent.RelevanceFilter
	extractor ragcontent.Extractor
	notifier  *notify.Notifier
	logger    *slog.Logger
	addr      string
}

// NewServer creates a Server and registers its routes.
func NewServer(
	cfg *ragcontent.Config,
	pages ragcontent.PageService,
	perms ragcontent.PermissionChecker,
	filter *ragcontent.RelevanceFilter,
	extractor ragcontent.Extractor,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)
			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(begin),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:      e,
		pages:     pages,
		perms:     perms,
		filter:    filter,
		extractor: extractor,
		notifier:  notifier,
		logger:    logger,
		addr:      cfg.ListenAddr,
	}

	g := e.Group(strings.TrimRight(cfg.RestPath, "/") + RoutePrefix)
	g.GET("/page_id/:page_id", s.handleGetContent)
	// Alias kept for consumers of the later route naming.
	g.GET("/identifier/:page_id", s.handleGetContent)
	g.POST("/events", s.handleEvent)

	e.GET("/health", s.handleHealth)

	return s
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleGetContent serves one page's extraction result by numeric page
// identifier. Pages filtered out by the relevance policy are reported as
// not found, so callers cannot distinguish excluded pages from missing
// ones. Read access only; no write access is required or granted.
func (s *Server) handleGetContent(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("page_id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "page_id must be a positive integer")
	}

	page, err := s.pages.FindPageByID(ctx, id)
	if err != nil {
		return httpError(err)
	}
	if page.ID == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}

	relevant, err := s.filter.IsRelevant(ctx, page, false)
	if err != nil {
		return httpError(err)
	}
	if !relevant {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}

	canRead, err := s.perms.CanRead(ctx, c.Request().Header.Get(actorHeader), page)
	if err != nil {
		return httpError(err)
	}
	if !canRead {
		return echo.NewHTTPError(http.StatusForbidden, "permission denied")
	}

	res, err := s.extractor.Extract(ctx, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Event types accepted by the events webhook.
const (
	EventPageUpdated = "updated"
	EventPageDeleted = "deleted"
	EventPageMoved   = "moved"
)

// EventRequest is the body posted by the wiki host on content-changing
// events.
type EventRequest struct {
	Type   string `json:"type"`
	PageID int64  `json:"page_id"`

	// FromNamespace is the source namespace of a move event.
	FromNamespace int `json:"from_namespace"`
}

// EventResponse reports whether the event produced a queued notification.
type EventResponse struct {
	Enqueued bool `json:"enqueued"`
}

// handleEvent maps the wiki host's content-changing events onto the
// notifier. Notification failures never fail the request: the response
// only reports whether a job was enqueued.
func (s *Server) handleEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PageID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "page_id must be a positive integer")
	}

	page, err := s.pages.FindPageByID(ctx, req.PageID)
	if err != nil {
		return httpError(err)
	}

	var enqueued bool
	switch req.Type {
	case EventPageUpdated:
		enqueued = s.notifier.PageUpdated(ctx, page)
	case EventPageDeleted:
		enqueued = s.notifier.PageDeleted(ctx, page)
	case EventPageMoved:
		enqueued = s.notifier.PageMoved(ctx, req.FromNamespace, page)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown event type")
	}

	return c.JSON(http.StatusOK, EventResponse{Enqueued: enqueued})
}

// httpError translates application errors into HTTP errors. Internal
// details never reach the caller.
func httpError(err error) *echo.HTTPError {
	switch ragcontent.ErrorCode(err) {
	case ragcontent.ENOTFOUND:
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	case ragcontent.EFORBIDDEN:
		return echo.NewHTTPError(http.StatusForbidden, "permission denied")
	case ragcontent.EINVALID:
		return echo.NewHTTPError(http.StatusBadRequest, ragcontent.ErrorMessage(err))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
