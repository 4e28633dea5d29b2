package poi

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for POI lookups.
type Service interface {
	LookupPOIs(ctx context.Context, filter types.POIFilter) ([]types.PointOfInterest, error)
	GetAllPOIs(ctx context.Context) ([]types.PointOfInterest, error)
}

type ServiceImpl struct {
	logger        *slog.Logger
	poiRepository Repository
}

func NewServiceImpl(poiRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:        logger,
		poiRepository: poiRepository,
	}
}

func (s *ServiceImpl) LookupPOIs(ctx context.Context, filter types.POIFilter) ([]types.PointOfInterest, error) {
	ctx, span := otel.Tracer("POIService").Start(ctx, "LookupPOIs")
	defer span.End()

	pois, err := s.poiRepository.LookupPOIs(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to look up POIs", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("pois.count", len(pois)))
	span.SetStatus(codes.Ok, "POIs retrieved")
	return pois, nil
}

func (s *ServiceImpl) GetAllPOIs(ctx context.Context) ([]types.PointOfInterest, error) {
	pois, err := s.poiRepository.GetAllPOIs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to get all POIs", slog.Any("error", err))
		return nil, err
	}
	return pois, nil
}
