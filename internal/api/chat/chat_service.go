package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/Msrrhw/JalanJalan-ai/app/observability/metrics"
	"github.com/Msrrhw/JalanJalan-ai/internal/api/poi"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// Generator is the text-generation capability the stage machine depends on.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service is the conversation stage machine: one call per incoming chat
// message, returning the reply payload for that user's current stage.
type Service interface {
	HandleMessage(ctx context.Context, userID, message string) (*types.ChatResponse, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	store      *Store
	poiService poi.Service
	aiClient   Generator
	genTimeout time.Duration
}

func NewService(store *Store, poiService poi.Service, aiClient Generator, genTimeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		store:      store,
		poiService: poiService,
		aiClient:   aiClient,
		genTimeout: genTimeout,
	}
}

// knownInterests is the tag catalogue the interest buttons offer.
var knownInterests = map[string]bool{
	"alam":    true,
	"kuliner": true,
	"sejarah": true,
	"belanja": true,
	"santai":  true,
}

func isStartTripIntent(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "create") && strings.Contains(lower, "trip")
}

// HandleMessage advances the user's conversation by exactly one turn. The
// session lock is held for the whole turn so concurrent requests from the
// same identifier cannot race a stage transition. Upstream failures are
// converted to an apologetic reply with the state left untouched, so the
// user can retry the same stage.
func (s *ServiceImpl) HandleMessage(ctx context.Context, userID, message string) (*types.ChatResponse, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "HandleMessage", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.Get().ChatRequestsTotal.Add(ctx, 1)
		metrics.Get().ChatDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	sess := s.store.Acquire(userID)
	sess.Lock()
	defer sess.Unlock()

	state := sess.State
	message = strings.TrimSpace(message)
	span.SetAttributes(attribute.String("stage", string(state.Stage)))

	if (state.Stage == types.StageIdle || state.Stage == types.StageCompleted) && isStartTripIntent(message) {
		if state.Stage == types.StageCompleted {
			// Explicit reset: a finished conversation starts over fresh.
			*state = *newConversationState()
		}
		state.Stage = types.StageAwaitingBudget
		state.UpdatedAt = time.Now()
		span.SetStatus(codes.Ok, "Trip creation started")
		return &types.ChatResponse{Reply: budgetReply}, nil
	}

	if sel, ok := types.ParsePreferenceSelection(message); ok {
		return s.handleSelection(ctx, state, message, sel)
	}
	return s.handleFreeForm(ctx, state, message)
}

func (s *ServiceImpl) handleSelection(ctx context.Context, state *types.ConversationState, message string, sel types.PreferenceSelection) (*types.ChatResponse, error) {
	l := s.logger.With(slog.String("stage", string(state.Stage)), slog.String("preference_type", string(sel.PreferenceType)))

	// An unrecognized tag is rejected deterministically; it never falls
	// through to the free-form branch.
	if !sel.PreferenceType.Valid() {
		l.WarnContext(ctx, "Rejected unknown preference type")
		return &types.ChatResponse{Reply: unknownSelectionReply(sel.PreferenceType)}, nil
	}

	switch {
	case state.Stage == types.StageAwaitingBudget && sel.PreferenceType == types.PreferenceBudget:
		budget := types.BudgetLevel(sel.Value)
		if !budget.Valid() {
			return &types.ChatResponse{Reply: invalidValueReply(sel.PreferenceType, sel.Value)}, nil
		}
		state.Preferences.Budget = budget
		state.Stage = types.StageAwaitingTravelStyle
		state.UpdatedAt = time.Now()
		return &types.ChatResponse{Reply: travelStyleReply(budget)}, nil

	case state.Stage == types.StageAwaitingTravelStyle && sel.PreferenceType == types.PreferenceTravelStyle:
		style := types.TravelStyle(sel.Value)
		if !style.Valid() {
			return &types.ChatResponse{Reply: invalidValueReply(sel.PreferenceType, sel.Value)}, nil
		}
		state.Preferences.TravelStyle = style
		state.Preferences.Interests = []string{}
		state.Stage = types.StageAwaitingInterests
		state.UpdatedAt = time.Now()
		return &types.ChatResponse{Reply: interestsReply}, nil

	case state.Stage == types.StageAwaitingInterests && sel.PreferenceType == types.PreferenceInterest:
		tag := strings.ToLower(strings.TrimSpace(sel.Value))
		if !knownInterests[tag] {
			return &types.ChatResponse{Reply: invalidValueReply(sel.PreferenceType, sel.Value)}, nil
		}
		// Idempotent: selecting the same tag twice keeps the set unchanged.
		if !state.Preferences.HasInterest(tag) {
			state.Preferences.Interests = append(state.Preferences.Interests, tag)
		}
		state.UpdatedAt = time.Now()
		return &types.ChatResponse{Reply: interestAddedReply(tag)}, nil

	case state.Stage == types.StageAwaitingInterests && sel.PreferenceType == types.PreferenceConfirmInterests:
		filter := types.POIFilter{
			Budget:      state.Preferences.Budget,
			Interests:   state.Preferences.Interests,
			TravelStyle: state.Preferences.TravelStyle,
		}
		pois, err := s.poiService.LookupPOIs(ctx, filter)
		if err != nil {
			l.ErrorContext(ctx, "POI lookup failed", slog.Any("error", err))
			return &types.ChatResponse{Reply: apologyReply}, nil
		}
		// An empty candidate set is fine; generation is still offered.
		state.CandidatePOIs = pois
		state.Stage = types.StageAwaitingConfirmation
		state.UpdatedAt = time.Now()
		return &types.ChatResponse{Reply: poiSuggestionsReply(pois), POIs: pois}, nil

	case state.Stage == types.StageAwaitingConfirmation && sel.PreferenceType == types.PreferenceGenerateItinerary:
		prompt := itineraryPrompt(state.Preferences, state.CandidatePOIs)
		genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
		raw, err := s.aiClient.GenerateContent(genCtx, prompt, nil)
		if err != nil {
			l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
			return &types.ChatResponse{Reply: apologyReply}, nil
		}

		entries, outcome := parseItineraryResponse(raw)
		state.Stage = types.StageCompleted
		state.UpdatedAt = time.Now()

		reply := itineraryReadyReply
		if outcome == OutcomeFallback {
			l.WarnContext(ctx, "Itinerary output failed strict parsing, returning fallback entry")
			reply = itineraryDegradedReply
		}
		return &types.ChatResponse{Reply: reply, Itinerary: entries}, nil
	}

	// A recognized selection that doesn't fit the current stage is treated
	// as free-form input, like any other off-script message.
	return s.handleFreeForm(ctx, state, message)
}

func (s *ServiceImpl) handleFreeForm(ctx context.Context, state *types.ConversationState, message string) (*types.ChatResponse, error) {
	prompt := freeFormPrompt(state.History, message)

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	reply, err := s.aiClient.GenerateContent(genCtx, prompt, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Free-form generation failed", slog.Any("error", err))
		return &types.ChatResponse{Reply: apologyReply}, nil
	}

	state.History = append(state.History,
		types.ConversationTurn{Role: types.RoleUser, Content: message},
		types.ConversationTurn{Role: types.RoleAssistant, Content: reply},
	)
	state.UpdatedAt = time.Now()
	return &types.ChatResponse{Reply: reply}, nil
}
