package poi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Msrrhw/JalanJalan-ai/app/observability/metrics"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines read-only access to the curated POI dataset.
type Repository interface {
	// LookupPOIs matches entries whose budget tier equals the requested
	// tier, whose category is one of the requested interests, and whose
	// travel style equals the requested style or is NULL (wildcard).
	// No matches is an empty slice, not an error.
	LookupPOIs(ctx context.Context, filter types.POIFilter) ([]types.PointOfInterest, error)

	// GetAllPOIs returns the full curated dataset, used by the
	// destination-driven generation flow.
	GetAllPOIs(ctx context.Context) ([]types.PointOfInterest, error)
}

// Querier is the subset of pgxpool.Pool the queries need; it lets tests
// substitute pgxmock.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool Querier
}

func NewRepository(pgxpool Querier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgxpool,
	}
}

const lookupPOIsQuery = `
        SELECT id, name, category, description, latitude, longitude
        FROM pois
        WHERE budget_level = $1
          AND category = ANY($2)
          AND (travel_style = $3 OR travel_style IS NULL)
        ORDER BY name`

func (r *RepositoryImpl) LookupPOIs(ctx context.Context, filter types.POIFilter) ([]types.PointOfInterest, error) {
	ctx, span := otel.Tracer("POIRepository").Start(ctx, "LookupPOIs", trace.WithAttributes(
		attribute.String("budget", string(filter.Budget)),
		attribute.String("travel_style", string(filter.TravelStyle)),
		attribute.Int("interests.count", len(filter.Interests)),
	))
	defer span.End()

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, lookupPOIsQuery,
		string(filter.Budget), filter.Interests, string(filter.TravelStyle))
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to query POIs", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("%w: querying pois: %v", types.ErrRepository, err)
	}
	defer rows.Close()

	pois := []types.PointOfInterest{}
	for rows.Next() {
		var p types.PointOfInterest
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Latitude, &p.Longitude); err != nil {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
			span.RecordError(err)
			return nil, fmt.Errorf("%w: scanning poi row: %v", types.ErrRepository, err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return nil, fmt.Errorf("%w: iterating poi rows: %v", types.ErrRepository, err)
	}

	span.SetAttributes(attribute.Int("pois.count", len(pois)))
	span.SetStatus(codes.Ok, "POIs retrieved")
	return pois, nil
}

const getAllPOIsQuery = `
        SELECT id, name, category, description, latitude, longitude
        FROM pois
        ORDER BY category, name`

func (r *RepositoryImpl) GetAllPOIs(ctx context.Context) ([]types.PointOfInterest, error) {
	ctx, span := otel.Tracer("POIRepository").Start(ctx, "GetAllPOIs")
	defer span.End()

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, getAllPOIsQuery)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to query all POIs", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("%w: querying pois: %v", types.ErrRepository, err)
	}
	defer rows.Close()

	pois := []types.PointOfInterest{}
	for rows.Next() {
		var p types.PointOfInterest
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Latitude, &p.Longitude); err != nil {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
			span.RecordError(err)
			return nil, fmt.Errorf("%w: scanning poi row: %v", types.ErrRepository, err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return nil, fmt.Errorf("%w: iterating poi rows: %v", types.ErrRepository, err)
	}

	span.SetStatus(codes.Ok, "POIs retrieved")
	return pois, nil
}
