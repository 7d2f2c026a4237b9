package httpadapter

import (
	"context"
	"log/slog"

	"gatherly/contexts/event-planning/event-service/application"
	"gatherly/contexts/event-planning/event-service/domain/entities"
	"gatherly/contexts/event-planning/event-service/ports"
	httptransport "gatherly/contexts/event-planning/event-service/transport/http"
)

type Handler struct {
	Events application.Service
	Logger *slog.Logger
}

func (h Handler) CreateEventHandler(ctx context.Context, req httptransport.CreateEventRequest) (httptransport.EventResponse, error) {
	event, err := h.Events.CreateEvent(ctx, ports.CreateEventInput{
		Title:     req.Title,
		CreatedBy: req.CreatedBy,
		Location:  req.Location,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return httptransport.EventResponse{Data: eventPayload(event)}, nil
}

func (h Handler) GetEventHandler(ctx context.Context, eventID string) (httptransport.EventResponse, error) {
	event, err := h.Events.GetEvent(ctx, eventID)
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return httptransport.EventResponse{Data: eventPayload(event)}, nil
}

func (h Handler) UpdateEventHandler(
	ctx context.Context,
	eventID string,
	req httptransport.UpdateEventRequest,
) (httptransport.EventResponse, error) {
	event, err := h.Events.UpdateEvent(ctx, eventID, ports.UpdateEventInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return httptransport.EventResponse{Data: eventPayload(event)}, nil
}

func eventPayload(event entities.Event) httptransport.EventPayload {
	return httptransport.EventPayload{
		ID:        event.EventID,
		Title:     event.Title,
		Location:  event.Location,
		StartsAt:  event.StartsAt,
		EndsAt:    event.EndsAt,
		CreatedBy: event.CreatedBy,
		CreatedAt: event.CreatedAt,
	}
}
