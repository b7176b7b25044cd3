package http

import (
	"net/http"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// OpenProductionSession handles POST /api/v1/sessions.
func (s *Server) OpenProductionSession(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewSession
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	itemID, err := fromOptionalAPIUUID(body.OrderItemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewOpenProductionSessionCommand(commands.OpenProductionSessionParams{
		SessionID:      sessionID,
		OrderItemID:    itemID,
		Zone:           body.Zone,
		Station:        body.Station,
		TargetQuantity: body.TargetQuantity,
		IsSubAssembly:  body.IsSubAssembly,
		Notes:          body.Notes,
		Actor:          actor,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.OpenProductionSession.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: toAPIUUID(sessionID)})
}

// LogProductionQuantity handles POST /api/v1/sessions/:sessionId/logs.
func (s *Server) LogProductionQuantity(ctx echo.Context) error {
	sessionID, actor, err := idAndActor(ctx, "sessionId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body QuantityLog
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewLogProductionQuantityCommand(sessionID, body.Delta, actor.ID())
	if err != nil {
		return s.fail(ctx, err)
	}
	entry, err := s.handlers.LogProductionQuantity.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, ProductionLog{
		ID:             toAPIUUID(entry.ID),
		QuantityChange: entry.QuantityChange,
		RunningTotal:   entry.RunningTotal,
		LoggedAt:       entry.LoggedAt,
	})
}

// PauseProductionSession handles POST /api/v1/sessions/:sessionId/pause.
func (s *Server) PauseProductionSession(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body PauseRequest
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewPauseProductionSessionCommand(sessionID, body.Reason, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.PauseProductionSession.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ResumeProductionSession handles POST /api/v1/sessions/:sessionId/resume.
func (s *Server) ResumeProductionSession(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewResumeProductionSessionCommand(sessionID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.ResumeProductionSession.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddSessionWorker handles POST /api/v1/sessions/:sessionId/workers.
func (s *Server) AddSessionWorker(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body SessionWorker
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	userID, err := fromAPIUUID(body.UserID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddSessionWorkerCommand(sessionID, userID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.AddSessionWorker.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteProductionSession handles POST /api/v1/sessions/:sessionId/complete.
// An empty body completes at the logged total without forcing.
func (s *Server) CompleteProductionSession(ctx echo.Context) error {
	sessionID, actor, err := idAndActor(ctx, "sessionId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body SessionCompletion
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteProductionSessionCommand(sessionID, body.FinalQuantity, body.Force, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.CompleteProductionSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := CompletionResult{QuantityCredited: result.QuantityDelta, TargetMet: result.TargetMet}
	if result.Inspection != nil {
		id := toAPIUUID(result.Inspection.ID())
		response.InspectionID = &id
	}
	return ctx.JSON(http.StatusOK, response)
}

// RecordQAInspection handles POST /api/v1/qa/inspections.
func (s *Server) RecordQAInspection(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewInspection
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	itemID, err := fromOptionalAPIUUID(body.OrderItemID)
	if err != nil {
		return s.fail(ctx, err)
	}
	sessionID, err := fromOptionalAPIUUID(body.SessionID)
	if err != nil {
		return s.fail(ctx, err)
	}
	defects := make([]commands.DefectInput, len(body.Defects))
	for i, d := range body.Defects {
		defects[i] = commands.DefectInput{Type: d.Type, Quantity: d.Quantity, Description: d.Description}
	}

	inspectionID := kernel.NewUUID()
	cmd, err := commands.NewRecordQAInspectionCommand(commands.RecordQAInspectionParams{
		InspectionID: inspectionID,
		OrderItemID:  itemID,
		SessionID:    sessionID,
		Type:         body.Type,
		BatchSize:    body.BatchSize,
		Passed:       body.Passed,
		Notes:        body.Notes,
		Defects:      defects,
		Actor:        actor,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.RecordQAInspection.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: toAPIUUID(inspectionID)})
}

// GetPendingInspections handles GET /api/v1/qa/inspections/pending.
func (s *Server) GetPendingInspections(ctx echo.Context) error {
	pending, err := s.handlers.GetPendingInspections.Handle(ctx.Request().Context(), queries.NewGetPendingInspectionsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]PendingInspection, len(pending))
	for i, p := range pending {
		response[i] = PendingInspection{
			ID:           toAPIUUID(p.ID),
			OrderItemID:  toOptionalAPIUUID(p.OrderItemID),
			SessionID:    toOptionalAPIUUID(p.SessionID),
			Type:         p.Type,
			BatchSize:    p.BatchSize,
			Notes:        p.Notes,
			CreatedAt:    p.CreatedAt,
			OrderID:      toOptionalAPIUUID(p.OrderID),
			OrderNumber:  p.OrderNumber,
			ProductName:  p.ProductName,
			ItemQuantity: p.ItemQuantity,
			ItemProduced: p.ItemProduced,
			ItemStatus:   p.ItemStatus,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ApproveQAInspection handles POST /api/v1/qa/inspections/:inspectionId/approve.
func (s *Server) ApproveQAInspection(ctx echo.Context) error {
	inspectionID, actor, err := idAndActor(ctx, "inspectionId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewApproveQAInspectionCommand(inspectionID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.ApproveQAInspection.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
