package http

import (
	"net/http"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func queryDate(ctx echo.Context, name string) (kernel.Date, error) {
	var d openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, true, name, ctx.QueryParams(), &d); err != nil {
		return kernel.Date{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return fromAPIDate(name, d)
}

// ListSchedule handles GET /api/v1/schedule?from=&to=&station=.
func (s *Server) ListSchedule(ctx echo.Context) error {
	from, err := queryDate(ctx, "from")
	if err != nil {
		return s.fail(ctx, err)
	}
	to, err := queryDate(ctx, "to")
	if err != nil {
		return s.fail(ctx, err)
	}
	var station *string
	if err = runtime.BindQueryParameter("form", true, false, "station", ctx.QueryParams(), &station); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("station", err))
	}

	query, err := queries.NewListScheduleQuery(from, to, valueOr(station, ""))
	if err != nil {
		return s.fail(ctx, err)
	}
	entries, err := s.handlers.ListSchedule.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ScheduleEntry, len(entries))
	for i, e := range entries {
		response[i] = ScheduleEntry{
			ID:              toAPIUUID(e.ID),
			OrderID:         toAPIUUID(e.OrderID),
			OrderItemID:     toAPIUUID(e.OrderItemID),
			OrderNumber:     e.OrderNumber,
			ProductName:     e.ProductName,
			Zone:            e.Zone,
			Station:         e.Station,
			ScheduledDate:   toAPIDate(e.ScheduledDate),
			PlannedQuantity: e.PlannedQuantity,
			Priority:        e.Priority,
			RunOrder:        e.RunOrder,
			Status:          e.Status,
			ItemStatus:      e.ItemStatus,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateScheduleEntry handles POST /api/v1/schedule.
func (s *Server) CreateScheduleEntry(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewScheduleEntry
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	itemID, err := fromAPIUUID(body.OrderItemID)
	if err != nil {
		return s.fail(ctx, err)
	}
	scheduled, err := fromAPIDate("scheduled date", body.ScheduledDate)
	if err != nil {
		return s.fail(ctx, err)
	}

	entryID := kernel.NewUUID()
	cmd, err := commands.NewCreateScheduleEntryCommand(commands.CreateScheduleEntryParams{
		EntryID:         entryID,
		OrderItemID:     itemID,
		Zone:            body.Zone,
		Station:         body.Station,
		ScheduledDate:   scheduled,
		PlannedQuantity: body.PlannedQuantity,
		Priority:        body.Priority,
		RunOrder:        body.RunOrder,
		Notes:           body.Notes,
		Actor:           actor,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CreateScheduleEntry.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: toAPIUUID(entryID)})
}

// CancelScheduleEntry handles DELETE /api/v1/schedule/:entryId.
func (s *Server) CancelScheduleEntry(ctx echo.Context) error {
	entryID, err := pathUUID(ctx, "entryId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCancelScheduleEntryCommand(entryID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CancelScheduleEntry.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CheckStationCapacity handles GET /api/v1/stations/:station/capacity?date=&additional=.
func (s *Server) CheckStationCapacity(ctx echo.Context) error {
	date, err := queryDate(ctx, "date")
	if err != nil {
		return s.fail(ctx, err)
	}
	var additional *int
	if err = runtime.BindQueryParameter("form", true, false, "additional", ctx.QueryParams(), &additional); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("additional", err))
	}

	query, err := queries.NewCheckStationCapacityQuery(ctx.Param("station"), date, valueOr(additional, 0))
	if err != nil {
		return s.fail(ctx, err)
	}
	report, err := s.handlers.CheckStationCapacity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CapacityReport{
		Station:            report.Station,
		Date:               toAPIDate(report.Date),
		MaxCapacity:        report.MaxCapacity,
		CurrentTotal:       report.CurrentTotal,
		AdditionalQuantity: report.AdditionalQuantity,
		NewTotal:           report.NewTotal,
		WouldExceed:        report.WouldExceed,
		RemainingCapacity:  report.RemainingCapacity,
	})
}

// SetStationCapacity handles PUT /api/v1/stations/:station/capacity.
func (s *Server) SetStationCapacity(ctx echo.Context) error {
	var body CapacityLimit
	if err := bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetStationCapacityCommand(ctx.Param("station"), body.MaxUnitsPerDay)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.SetStationCapacity.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
