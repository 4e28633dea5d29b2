package poi

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LookupPOIs(ctx context.Context, filter types.POIFilter) ([]types.PointOfInterest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PointOfInterest), args.Error(1)
}

func (m *MockRepository) GetAllPOIs(ctx context.Context) ([]types.PointOfInterest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PointOfInterest), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestServiceLookupPOIs_PassesFilterThrough(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, newTestLogger())

	filter := types.POIFilter{Budget: types.BudgetMedium, Interests: []string{"sejarah"}, TravelStyle: types.StyleFamilyFriendly}
	expected := []types.PointOfInterest{{Name: "Royal Regalia Museum", Category: "sejarah"}}
	repo.On("LookupPOIs", mock.Anything, filter).Return(expected, nil).Once()

	pois, err := svc.LookupPOIs(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, expected, pois)
	repo.AssertExpectations(t)
}

func TestServiceLookupPOIs_PropagatesError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, newTestLogger())

	repo.On("LookupPOIs", mock.Anything, mock.Anything).Return(nil, types.ErrRepository).Once()

	pois, err := svc.LookupPOIs(context.Background(), types.POIFilter{})
	assert.Nil(t, pois)
	assert.ErrorIs(t, err, types.ErrRepository)
}

func TestServiceGetAllPOIs(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, newTestLogger())

	expected := []types.PointOfInterest{{Name: "Muara Beach", Category: "santai"}}
	repo.On("GetAllPOIs", mock.Anything).Return(expected, nil).Once()

	pois, err := svc.GetAllPOIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, pois)
}
