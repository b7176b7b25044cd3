package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server adapts HTTP requests onto the application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http.Server"),
	}
}

// RouterOptions carry the cross-cutting collaborators of the router.
// Observer and MetricsHandler are optional.
type RouterOptions struct {
	Verifier       TokenVerifier
	Observer       RequestObserver
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// NewRouter builds the echo instance: health, metrics and docs endpoints
// are public, everything under /api/v1 needs a bearer token and must match
// the embedded contract.
func NewRouter(ctx context.Context, server *Server, opts RouterOptions) (*echo.Echo, error) {
	doc, err := LoadContract(ctx)
	if err != nil {
		return nil, err
	}
	validateRequests, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	docs, err := docsHandler(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(RequestLogger(opts.Logger))
	if opts.Observer != nil {
		e.Use(Metrics(opts.Observer))
	}

	e.GET("/health", health)
	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}
	e.GET("/swagger/*", docs)

	api := e.Group("/api/v1", Authenticate(opts.Verifier), validateRequests)
	server.RegisterRoutes(api)
	return e, nil
}

// RegisterRoutes mounts every use case on g.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.POST("/orders/:orderId/items", s.AddOrderItem)
	g.POST("/orders/:orderId/verify", s.VerifyOrder)
	g.POST("/orders/:orderId/docking", s.CompleteOrderDocking)
	g.PUT("/orders/:orderId/status", s.SetOrderStatus)
	g.POST("/orders/:orderId/sync", s.SyncOrderStatus)
	g.POST("/orders/:orderId/dispatch", s.DispatchOrder)
	g.POST("/orders/:orderId/delivery", s.RecordDelivery)
	g.POST("/orders/:orderId/stock-run/complete", s.CompleteStockRun)

	g.POST("/items/:itemId/docking", s.CompleteItemDocking)
	g.POST("/items/:itemId/split", s.SplitOrderItem)
	g.PUT("/items/:itemId/status", s.SetItemStatus)

	g.POST("/sessions", s.OpenProductionSession)
	g.POST("/sessions/:sessionId/logs", s.LogProductionQuantity)
	g.POST("/sessions/:sessionId/pause", s.PauseProductionSession)
	g.POST("/sessions/:sessionId/resume", s.ResumeProductionSession)
	g.POST("/sessions/:sessionId/workers", s.AddSessionWorker)
	g.POST("/sessions/:sessionId/complete", s.CompleteProductionSession)

	g.POST("/qa/inspections", s.RecordQAInspection)
	g.GET("/qa/inspections/pending", s.GetPendingInspections)
	g.POST("/qa/inspections/:inspectionId/approve", s.ApproveQAInspection)

	g.GET("/schedule", s.ListSchedule)
	g.POST("/schedule", s.CreateScheduleEntry)
	g.DELETE("/schedule/:entryId", s.CancelScheduleEntry)
	g.GET("/stations/:station/capacity", s.CheckStationCapacity)
	g.PUT("/stations/:station/capacity", s.SetStationCapacity)
}
