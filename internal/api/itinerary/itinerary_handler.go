package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Msrrhw/JalanJalan-ai/internal/api"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

type Handler struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewHandler(itineraryService Service, logger *slog.Logger) *Handler {
	return &Handler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// GenerateItinerary serves POST /api/v1/itinerary/generate. Unlike the chat
// flow, upstream failures surface here as an explicit error payload.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := ValidateRequest(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.itineraryService.GenerateItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		switch {
		case errors.Is(err, types.ErrRepository):
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "POI data source is unavailable")
		case errors.Is(err, types.ErrGeneration):
			api.ErrorResponse(w, r, http.StatusBadGateway, "Itinerary generation is unavailable")
		default:
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
