package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/datepool-api/internal/dto"
	"github.com/noah-isme/datepool-api/internal/models"
	"github.com/noah-isme/datepool-api/internal/sampler"
	appErrors "github.com/noah-isme/datepool-api/pkg/errors"
	"github.com/noah-isme/datepool-api/pkg/export"
)

type dateSetRepository interface {
	Insert(ctx context.Context, set *models.DateSet) error
	FindByID(ctx context.Context, id string) (*models.DateSet, error)
	List(ctx context.Context, filter models.DateSetFilter) ([]models.DateSet, int, error)
	Delete(ctx context.Context, id string) error
}

type dateSetCache interface {
	GetDateSet(ctx context.Context, id string, dest interface{}) error
	SetDateSet(ctx context.Context, id string, value interface{}, ttl time.Duration)
	InvalidateDateSet(ctx context.Context, id string)
}

type samplerObserver interface {
	ObserveGeneration(duration time.Duration, requested, produced int)
	CacheHit()
	CacheMiss()
}

// DateSetResult couples a generated or retrieved set with the advisory
// messages its configuration resolution produced. Messages is never nil so
// "no messages" is an explicit empty list.
type DateSetResult struct {
	Set      dto.DateSetResponse `json:"set"`
	Messages []sampler.Advisory  `json:"messages"`
}

// ExportArtifact is a rendered tabular export of a stored set.
type ExportArtifact struct {
	Content     []byte
	ContentType string
	Filename    string
}

// DateSetServiceConfig tunes caching behaviour.
type DateSetServiceConfig struct {
	CacheTTL time.Duration
}

// DateSetService resolves generation parameters, runs the stratified
// sampler, and manages persistence and retrieval of the produced sets.
// Every generation pass gets its own rng and counters, so concurrent
// requests never share mutable state.
type DateSetService struct {
	repo      dateSetRepository
	cache     dateSetCache
	validator *validator.Validate
	logger    *zap.Logger
	metrics   samplerObserver
	cacheTTL  time.Duration

	newRand func() *rand.Rand
}

// NewDateSetService wires the date-set dependencies.
func NewDateSetService(
	repo dateSetRepository,
	cache dateSetCache,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics samplerObserver,
	cfg DateSetServiceConfig,
) *DateSetService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 12 * time.Hour
	}
	return &DateSetService{
		repo:      repo,
		cache:     cache,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		cacheTTL:  cfg.CacheTTL,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Generate resolves the request against the defaults, samples a fresh set,
// and persists it under a new identifier.
func (s *DateSetService) Generate(ctx context.Context, req dto.GenerateDateSetRequest) (*DateSetResult, error) {
	cfg, advisories := sampler.Resolve(req.Params(), nil)
	return s.generateAndStore(ctx, cfg, advisories)
}

// Regenerate resolves the request over the configuration of a previously
// stored set: fields absent from the request keep the stored values. The
// outcome is persisted as a new set; the source set is untouched.
func (s *DateSetService) Regenerate(ctx context.Context, id string, req dto.GenerateDateSetRequest) (*DateSetResult, error) {
	stored, err := s.loadStored(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, advisories := sampler.Resolve(req.Params(), &stored.Set.Config)
	return s.generateAndStore(ctx, cfg, advisories)
}

// Get retrieves a stored set by identifier, cache first.
func (s *DateSetService) Get(ctx context.Context, id string) (*DateSetResult, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date set id is required")
	}

	var cached DateSetResult
	if s.cache != nil {
		if err := s.cache.GetDateSet(ctx, id, &cached); err == nil {
			if s.metrics != nil {
				s.metrics.CacheHit()
			}
			return &cached, nil
		}
		if s.metrics != nil {
			s.metrics.CacheMiss()
		}
	}

	result, err := s.loadStored(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetDateSet(ctx, id, result, s.cacheTTL)
	}
	return result, nil
}

// List returns summaries of stored sets.
func (s *DateSetService) List(ctx context.Context, query dto.DateSetListQuery) ([]dto.DateSetSummary, *models.Pagination, error) {
	filter := models.DateSetFilter{
		Year:     query.Year,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	sets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list date sets")
	}
	summaries := make([]dto.DateSetSummary, 0, len(sets))
	for _, set := range sets {
		summaries = append(summaries, dto.DateSetSummary{
			ID:        set.ID,
			Year:      set.Year,
			NumDates:  set.NumDates,
			CreatedAt: set.CreatedAt,
		})
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return summaries, pagination, nil
}

// Delete removes a stored set and drops it from the cache.
func (s *DateSetService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "date set id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "date set not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete date set")
	}
	if s.cache != nil {
		s.cache.InvalidateDateSet(ctx, id)
	}
	return nil
}

// Export renders a stored set as CSV or PDF, one row per date in
// chronological order.
func (s *DateSetService) Export(ctx context.Context, req dto.ExportDateSetRequest) (*ExportArtifact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	result, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Day", "Month", "Quarter"},
		Rows:    make([][]string, 0, len(result.Set.Dates)),
	}
	for _, d := range result.Set.Dates {
		dataset.Rows = append(dataset.Rows, []string{
			d.ID, d.Weekday.String(), strconv.Itoa(d.Month), strconv.Itoa(d.Quarter),
		})
	}

	switch req.Format {
	case "pdf":
		content, err := export.NewPDFExporter().Render(dataset, fmt.Sprintf("Dates %d", result.Set.Config.Year))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportArtifact{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("date-set-%s.pdf", req.ID),
		}, nil
	default:
		content, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportArtifact{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("date-set-%s.csv", req.ID),
		}, nil
	}
}

// Weekdays returns the canonical weekday-name lookup.
func (s *DateSetService) Weekdays() []dto.WeekdayName {
	days := sampler.Weekdays()
	out := make([]dto.WeekdayName, 0, len(days))
	for _, d := range days {
		out = append(out, dto.WeekdayName{Code: int(d), Name: d.String()})
	}
	return out
}

func (s *DateSetService) generateAndStore(ctx context.Context, cfg sampler.Config, advisories []sampler.Advisory) (*DateSetResult, error) {
	start := time.Now()
	dates := sampler.Generate(cfg, s.newRand())
	if s.metrics != nil {
		s.metrics.ObserveGeneration(time.Since(start), cfg.NumDates, len(dates))
	}

	if advisories == nil {
		advisories = []sampler.Advisory{}
	}

	payloadBytes, err := json.Marshal(models.DateSetPayload{Config: cfg, Dates: dates})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode date set payload")
	}
	messageBytes, err := json.Marshal(advisories)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode date set messages")
	}

	record := &models.DateSet{
		ID:        uuid.NewString(),
		Year:      cfg.Year,
		NumDates:  cfg.NumDates,
		Payload:   types.JSONText(payloadBytes),
		Messages:  types.JSONText(messageBytes),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store date set")
	}

	result := &DateSetResult{
		Set: dto.DateSetResponse{
			ID:        record.ID,
			Config:    cfg,
			Dates:     dates,
			CreatedAt: record.CreatedAt,
		},
		Messages: advisories,
	}
	if s.cache != nil {
		s.cache.SetDateSet(ctx, record.ID, result, s.cacheTTL)
	}

	s.logger.Info("date set generated",
		zap.String("id", record.ID),
		zap.Int("year", cfg.Year),
		zap.Int("requested", cfg.NumDates),
		zap.Int("produced", len(dates)),
		zap.Int("advisories", len(advisories)),
	)
	return result, nil
}

func (s *DateSetService) loadStored(ctx context.Context, id string) (*DateSetResult, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "date set not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load date set")
	}

	var payload models.DateSetPayload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode date set payload")
	}
	messages := []sampler.Advisory{}
	if len(record.Messages) > 0 {
		if err := json.Unmarshal(record.Messages, &messages); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode date set messages")
		}
	}

	return &DateSetResult{
		Set: dto.DateSetResponse{
			ID:        record.ID,
			Config:    payload.Config,
			Dates:     payload.Dates,
			CreatedAt: record.CreatedAt,
		},
		Messages: messages,
	}, nil
}
