package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/Msrrhw/JalanJalan-ai/internal/api/media"
	"github.com/Msrrhw/JalanJalan-ai/internal/api/poi"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

const maxTripDays = 14

// Generator is the text-generation capability this flow depends on.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service generates a full itinerary in one shot from an explicit
// preference payload, enriching every entry with an image reference.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.GenerateItineraryRequest) (*types.GenerateItineraryResponse, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	poiService   poi.Service
	aiClient     Generator
	imageService *media.ImageService
	genTimeout   time.Duration
}

func NewService(poiService poi.Service, aiClient Generator, imageService *media.ImageService, genTimeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		poiService:   poiService,
		aiClient:     aiClient,
		imageService: imageService,
		genTimeout:   genTimeout,
	}
}

// ValidateRequest checks the payload before any external call is made.
func ValidateRequest(req types.GenerateItineraryRequest) error {
	if req.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if !req.Budget.Valid() {
		return fmt.Errorf("budget must be one of low, medium, high")
	}
	if !req.TravelStyle.Valid() {
		return fmt.Errorf("travel_style must be one of relaxed, adventurous, family-friendly")
	}
	if req.Days < 1 || req.Days > maxTripDays {
		return fmt.Errorf("days must be between 1 and %d", maxTripDays)
	}
	return nil
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.GenerateItineraryRequest) (*types.GenerateItineraryResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("destination", req.Destination),
		attribute.Int("days", req.Days),
	))
	defer span.End()

	if err := ValidateRequest(req); err != nil {
		span.RecordError(err)
		return nil, err
	}

	pois, err := s.poiService.GetAllPOIs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load curated POI dataset", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	prompt := generationPrompt(req, pois)
	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	raw, err := s.aiClient.GenerateContent(genCtx, prompt, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	entries, structured := parseGeneratedEntries(raw)
	if !structured {
		s.logger.WarnContext(ctx, "Generation output failed strict parsing, returning fallback entry")
		span.AddEvent("fallback entry returned")
	}

	s.enrichWithImages(entries, req.Destination)

	span.SetAttributes(attribute.Int("entries.count", len(entries)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return &types.GenerateItineraryResponse{
		Destination: req.Destination,
		Days:        req.Days,
		Itinerary:   entries,
	}, nil
}

// enrichWithImages attaches an image reference to every entry, preferring
// the matched POI name over the activity title.
func (s *ServiceImpl) enrichWithImages(entries []types.ItineraryEntry, destination string) {
	for i := range entries {
		subject := entries[i].Title
		if entries[i].POIName != nil && *entries[i].POIName != "" {
			subject = *entries[i].POIName
		}
		if subject == "" {
			continue
		}
		imageURL := s.imageService.DescribeImage(subject, destination)
		entries[i].ImageURL = &imageURL
	}
}
