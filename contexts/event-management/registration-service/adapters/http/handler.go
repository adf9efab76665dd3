package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "github.com/RadikAgl/events/contexts/event-management/registration-service/application"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/application/commands"
	httptransport "github.com/RadikAgl/events/contexts/event-management/registration-service/transport/http"
)

type Handler struct {
	Register commands.RegisterAttendeeUseCase
	Logger   *slog.Logger
}

// RegisterHandler godoc
// @Summary Register an attendee for an event
// @Description Creates a registration and queues the confirmation notification atomically.
// @Tags registration-service
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param request body httptransport.RegisterRequest true "Attendee details"
// @Success 201 {object} httptransport.RegisterResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/events/{event_id}/register [post]
func (h Handler) RegisterHandler(
	ctx context.Context,
	eventID string,
	req httptransport.RegisterRequest,
) (httptransport.RegisterResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("registration request received",
		"event", "http_register_received",
		"module", "event-management/registration-service",
		"layer", "transport",
		"event_id", eventID,
	)

	result, err := h.Register.Execute(ctx, commands.RegisterAttendeeCommand{
		EventID:  eventID,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}

	return httptransport.RegisterResponse{
		RegistrationID: result.Registration.RegistrationID,
		EventID:        result.Registration.EventID,
		Email:          result.Registration.Email,
		CreatedAt:      result.Registration.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}
