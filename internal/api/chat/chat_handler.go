package chat

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Msrrhw/JalanJalan-ai/internal/api"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

type ChatHandler struct {
	chatService Service
	logger      *slog.Logger
}

func NewChatHandler(chatService Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleChatMessage serves POST /chat: one dialogue turn for one user.
func (h *ChatHandler) HandleChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "HandleChatMessage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "HandleChatMessage"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID == "" {
		req.UserID = "default"
	}
	if req.Message == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := h.chatService.HandleMessage(ctx, req.UserID, req.Message)
	if err != nil {
		l.ErrorContext(ctx, "Chat service failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error. Please try again later.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
