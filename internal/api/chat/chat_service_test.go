package chat

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/Msrrhw/JalanJalan-ai/app/observability/metrics"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

func TestMain(m *testing.M) {
	// Instruments resolve against the default (noop) meter provider.
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

// --- Mocks for Dependencies ---

type MockPOIService struct {
	mock.Mock
}

func (m *MockPOIService) LookupPOIs(ctx context.Context, filter types.POIFilter) ([]types.PointOfInterest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PointOfInterest), args.Error(1)
}

func (m *MockPOIService) GetAllPOIs(ctx context.Context) ([]types.PointOfInterest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PointOfInterest), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func newTestService(t *testing.T) (*ServiceImpl, *MockPOIService, *MockGenerator, *Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	poiSvc := new(MockPOIService)
	gen := new(MockGenerator)
	store := NewStore(time.Minute, time.Minute)
	svc := NewService(store, poiSvc, gen, 5*time.Second, logger)
	return svc, poiSvc, gen, store
}

func selection(prefType, value string) string {
	return `{"preference_type":"` + prefType + `","value":"` + value + `"}`
}

func TestHandleMessage_StartTripIntent(t *testing.T) {
	svc, _, _, store := newTestService(t)

	resp, err := svc.HandleMessage(context.Background(), "u1", "I want to create a trip")
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Select your budget")
	assert.Contains(t, resp.Reply, "data-type='budget'")

	state := store.Acquire("u1").State
	assert.Equal(t, types.StageAwaitingBudget, state.Stage)
}

func TestHandleMessage_FullStageWalk(t *testing.T) {
	svc, poiSvc, gen, store := newTestService(t)
	ctx := context.Background()

	pois := []types.PointOfInterest{
		{Name: "Gadong Night Market", Category: "kuliner", Description: "Open-air stalls", Latitude: 4.905, Longitude: 114.917},
	}
	poiSvc.On("LookupPOIs", mock.Anything, types.POIFilter{
		Budget:      types.BudgetMedium,
		Interests:   []string{"kuliner", "alam"},
		TravelStyle: types.StyleRelaxed,
	}).Return(pois, nil).Once()

	itineraryJSON := `[{"time":"09:00","title":"Breakfast","description":"Satay at the market","poi_name":"Gadong Night Market","lat":4.905,"lon":114.917}]`
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(itineraryJSON, nil).Once()

	steps := []string{
		"please create a trip for me",
		selection("budget", "medium"),
		selection("travel_style", "relaxed"),
		selection("interest", "kuliner"),
		selection("interest", "alam"),
		selection("interest", "kuliner"), // duplicate, must be idempotent
		selection("confirm_interests", "done"),
		selection("generate_itinerary", "yes"),
	}

	var last *types.ChatResponse
	for _, step := range steps {
		var err error
		last, err = svc.HandleMessage(ctx, "u1", step)
		require.NoError(t, err, "step %q", step)
		require.NotEmpty(t, last.Reply)
	}

	state := store.Acquire("u1").State
	assert.Equal(t, types.StageCompleted, state.Stage)
	assert.Equal(t, types.BudgetMedium, state.Preferences.Budget)
	assert.Equal(t, types.StyleRelaxed, state.Preferences.TravelStyle)
	assert.Equal(t, []string{"kuliner", "alam"}, state.Preferences.Interests)
	assert.Equal(t, pois, state.CandidatePOIs)

	require.Len(t, last.Itinerary, 1)
	assert.Equal(t, "Breakfast", last.Itinerary[0].Title)
	require.NotNil(t, last.Itinerary[0].POIName)
	assert.Equal(t, "Gadong Night Market", *last.Itinerary[0].POIName)
	assert.Equal(t, itineraryReadyReply, last.Reply)

	poiSvc.AssertExpectations(t)
	gen.AssertExpectations(t)
}

func TestHandleMessage_InterestAcknowledged(t *testing.T) {
	svc, _, _, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingInterests

	resp, err := svc.HandleMessage(ctx, "u1", selection("interest", "kuliner"))
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "kuliner")
	assert.Equal(t, []string{"kuliner"}, sess.State.Preferences.Interests)
	assert.Equal(t, types.StageAwaitingInterests, sess.State.Stage)
}

func TestHandleMessage_InterestIdempotent(t *testing.T) {
	svc, _, _, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingInterests

	for i := 0; i < 3; i++ {
		_, err := svc.HandleMessage(ctx, "u1", selection("interest", "sejarah"))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"sejarah"}, sess.State.Preferences.Interests)
}

func TestHandleMessage_EmptyLookupStillAdvances(t *testing.T) {
	svc, poiSvc, _, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingInterests
	sess.State.Preferences = types.TripPreferences{
		Budget:      types.BudgetHigh,
		TravelStyle: types.StyleAdventurous,
		Interests:   []string{"belanja"},
	}

	poiSvc.On("LookupPOIs", mock.Anything, mock.Anything).Return([]types.PointOfInterest{}, nil).Once()

	resp, err := svc.HandleMessage(ctx, "u1", selection("confirm_interests", "done"))
	require.NoError(t, err)

	assert.Equal(t, types.StageAwaitingConfirmation, sess.State.Stage)
	assert.Contains(t, resp.Reply, "generate_itinerary")
	assert.Empty(t, resp.POIs)
}

func TestHandleMessage_LookupFailureLeavesStateUnchanged(t *testing.T) {
	svc, poiSvc, _, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingInterests
	sess.State.Preferences.Interests = []string{"alam"}

	poiSvc.On("LookupPOIs", mock.Anything, mock.Anything).Return(nil, types.ErrRepository).Once()

	resp, err := svc.HandleMessage(ctx, "u1", selection("confirm_interests", "done"))
	require.NoError(t, err)

	assert.Equal(t, apologyReply, resp.Reply)
	assert.Equal(t, types.StageAwaitingInterests, sess.State.Stage)
	assert.Nil(t, sess.State.CandidatePOIs)
}

func TestHandleMessage_DegradedGeneration(t *testing.T) {
	svc, _, gen, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingConfirmation
	sess.State.CandidatePOIs = []types.PointOfInterest{}

	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("not json at all", nil).Once()

	resp, err := svc.HandleMessage(ctx, "u1", selection("generate_itinerary", "yes"))
	require.NoError(t, err)

	assert.Equal(t, itineraryDegradedReply, resp.Reply)
	require.Len(t, resp.Itinerary, 1)
	entry := resp.Itinerary[0]
	assert.Equal(t, "not json at all", entry.Description)
	assert.Nil(t, entry.POIName)
	assert.Nil(t, entry.Latitude)
	assert.Nil(t, entry.Longitude)
	assert.Equal(t, types.StageCompleted, sess.State.Stage)
}

func TestHandleMessage_GenerationFailureLeavesStateUnchanged(t *testing.T) {
	svc, _, gen, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingConfirmation

	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("", types.ErrGeneration).Once()

	resp, err := svc.HandleMessage(ctx, "u1", selection("generate_itinerary", "yes"))
	require.NoError(t, err)

	assert.Equal(t, apologyReply, resp.Reply)
	assert.Equal(t, types.StageAwaitingConfirmation, sess.State.Stage)
}

func TestHandleMessage_UnknownSelectionRejectedDeterministically(t *testing.T) {
	svc, _, gen, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingBudget

	resp, err := svc.HandleMessage(ctx, "u1", selection("favourite_color", "blue"))
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "favourite_color")
	assert.Equal(t, types.StageAwaitingBudget, sess.State.Stage)
	// The free-form generator must not have been consulted.
	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_InvalidBudgetValueRejected(t *testing.T) {
	svc, _, _, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageAwaitingBudget

	resp, err := svc.HandleMessage(ctx, "u1", selection("budget", "extravagant"))
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "extravagant")
	assert.Equal(t, types.StageAwaitingBudget, sess.State.Stage)
	assert.Empty(t, sess.State.Preferences.Budget)
}

func TestHandleMessage_FreeFormFallback(t *testing.T) {
	svc, _, gen, store := newTestService(t)
	ctx := context.Background()

	gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "user: what's the weather like?")
	}), mock.Anything).Return("Sunny all weekend!", nil).Once()

	resp, err := svc.HandleMessage(ctx, "u1", "what's the weather like?")
	require.NoError(t, err)

	assert.Equal(t, "Sunny all weekend!", resp.Reply)

	state := store.Acquire("u1").State
	assert.Equal(t, types.StageIdle, state.Stage)
	require.Len(t, state.History, 2)
	assert.Equal(t, types.RoleUser, state.History[0].Role)
	assert.Equal(t, types.RoleAssistant, state.History[1].Role)
	gen.AssertExpectations(t)
}

func TestHandleMessage_FreeFormFailureKeepsHistory(t *testing.T) {
	svc, _, gen, store := newTestService(t)
	ctx := context.Background()

	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("", types.ErrGeneration).Once()

	resp, err := svc.HandleMessage(ctx, "u1", "hello there")
	require.NoError(t, err)

	assert.Equal(t, apologyReply, resp.Reply)
	assert.Empty(t, store.Acquire("u1").State.History)
}

func TestHandleMessage_SelectionAtWrongStageFallsThrough(t *testing.T) {
	svc, _, gen, store := newTestService(t)
	ctx := context.Background()

	// A budget selection while still idle matches no transition and is
	// treated as free text.
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("Let's start by creating a trip!", nil).Once()

	resp, err := svc.HandleMessage(ctx, "u1", selection("budget", "low"))
	require.NoError(t, err)

	assert.Equal(t, "Let's start by creating a trip!", resp.Reply)
	state := store.Acquire("u1").State
	assert.Equal(t, types.StageIdle, state.Stage)
	assert.Empty(t, state.Preferences.Budget)
}

func TestHandleMessage_CompletedRestartResets(t *testing.T) {
	svc, _, _, store := newTestService(t)
	ctx := context.Background()

	sess := store.Acquire("u1")
	sess.State.Stage = types.StageCompleted
	sess.State.Preferences = types.TripPreferences{
		Budget:    types.BudgetLow,
		Interests: []string{"alam"},
	}

	resp, err := svc.HandleMessage(ctx, "u1", "create another trip please")
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Select your budget")
	state := store.Acquire("u1").State
	assert.Equal(t, types.StageAwaitingBudget, state.Stage)
	assert.Empty(t, state.Preferences.Budget)
	assert.Empty(t, state.Preferences.Interests)
}
