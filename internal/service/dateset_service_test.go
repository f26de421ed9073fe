package service

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/datepool-api/internal/dto"
	"github.com/noah-isme/datepool-api/internal/models"
	appErrors "github.com/noah-isme/datepool-api/pkg/errors"
)

type dateSetRepoStub struct {
	items     map[string]models.DateSet
	insertErr error
	lastSet   *models.DateSet
}

func (s *dateSetRepoStub) Insert(ctx context.Context, set *models.DateSet) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.items == nil {
		s.items = make(map[string]models.DateSet)
	}
	s.items[set.ID] = *set
	s.lastSet = set
	return nil
}

func (s *dateSetRepoStub) FindByID(ctx context.Context, id string) (*models.DateSet, error) {
	if set, ok := s.items[id]; ok {
		return &set, nil
	}
	return nil, sql.ErrNoRows
}

func (s *dateSetRepoStub) List(ctx context.Context, filter models.DateSetFilter) ([]models.DateSet, int, error) {
	out := make([]models.DateSet, 0, len(s.items))
	for _, set := range s.items {
		out = append(out, set)
	}
	return out, len(out), nil
}

func (s *dateSetRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.items, id)
	return nil
}

type dateSetCacheStub struct {
	stored      map[string]interface{}
	invalidated []string
}

func (c *dateSetCacheStub) GetDateSet(ctx context.Context, id string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (c *dateSetCacheStub) SetDateSet(ctx context.Context, id string, value interface{}, ttl time.Duration) {
	if c.stored == nil {
		c.stored = make(map[string]interface{})
	}
	c.stored[id] = value
}

func (c *dateSetCacheStub) InvalidateDateSet(ctx context.Context, id string) {
	c.invalidated = append(c.invalidated, id)
}

type samplerObserverStub struct {
	generations int
	requested   int
	produced    int
	hits        int
	misses      int
}

func (o *samplerObserverStub) ObserveGeneration(d time.Duration, requested, produced int) {
	o.generations++
	o.requested = requested
	o.produced = produced
}

func (o *samplerObserverStub) CacheHit()  { o.hits++ }
func (o *samplerObserverStub) CacheMiss() { o.misses++ }

func intPtr(n int) *int { return &n }

func newTestService(repo *dateSetRepoStub, cache *dateSetCacheStub, obs *samplerObserverStub) *DateSetService {
	svc := NewDateSetService(repo, cache, validator.New(), nil, obs, DateSetServiceConfig{})
	svc.newRand = func() *rand.Rand { return rand.New(rand.NewSource(1)) }
	return svc
}

func TestDateSetServiceGenerate(t *testing.T) {
	repo := &dateSetRepoStub{}
	cache := &dateSetCacheStub{}
	obs := &samplerObserverStub{}
	svc := newTestService(repo, cache, obs)

	result, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{
		Year:     intPtr(2024),
		NumDates: intPtr(12),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Set.ID)
	assert.Len(t, result.Set.Dates, 12)
	assert.Equal(t, 2024, result.Set.Config.Year)
	assert.NotNil(t, result.Messages)
	assert.Empty(t, result.Messages)

	require.NotNil(t, repo.lastSet)
	assert.Equal(t, result.Set.ID, repo.lastSet.ID)
	assert.Contains(t, cache.stored, result.Set.ID)
	assert.Equal(t, 1, obs.generations)
	assert.Equal(t, 12, obs.produced)
}

func TestDateSetServiceGenerateCarriesAdvisories(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	result, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{
		Year:     intPtr(2024),
		NumDates: intPtr(10),
		LimDays:  intPtr(1),
	})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, 7, result.Messages[0].Max)
	assert.LessOrEqual(t, len(result.Set.Dates), 7)
}

func TestDateSetServiceGenerateInsertFailure(t *testing.T) {
	repo := &dateSetRepoStub{insertErr: errors.New("boom")}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{Year: intPtr(2024)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestDateSetServiceGetRoundTrip(t *testing.T) {
	repo := &dateSetRepoStub{}
	obs := &samplerObserverStub{}
	svc := newTestService(repo, &dateSetCacheStub{}, obs)

	generated, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{
		Year:     intPtr(2023),
		NumDates: intPtr(5),
		Exclude:  []int{6, 7},
	})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), generated.Set.ID)
	require.NoError(t, err)
	assert.Equal(t, generated.Set.ID, fetched.Set.ID)
	assert.Equal(t, generated.Set.Dates, fetched.Set.Dates)
	assert.Equal(t, generated.Set.Config, fetched.Set.Config)
	assert.Equal(t, 1, obs.misses)

	for _, d := range fetched.Set.Dates {
		assert.NotEqual(t, 6, int(d.Weekday))
		assert.NotEqual(t, 7, int(d.Weekday))
	}
}

func TestDateSetServiceGetNotFound(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDateSetServiceRegenerateMergesStoredConfig(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	first, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{
		Year:     intPtr(2023),
		NumDates: intPtr(10),
		Exclude:  []int{1},
	})
	require.NoError(t, err)

	second, err := svc.Regenerate(context.Background(), first.Set.ID, dto.GenerateDateSetRequest{
		NumDates: intPtr(4),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Set.ID, second.Set.ID)
	assert.Equal(t, 2023, second.Set.Config.Year)
	assert.Equal(t, 4, second.Set.Config.NumDates)
	assert.Equal(t, first.Set.Config.Exclude, second.Set.Config.Exclude)
}

func TestDateSetServiceDelete(t *testing.T) {
	repo := &dateSetRepoStub{}
	cache := &dateSetCacheStub{}
	svc := newTestService(repo, cache, nil)

	result, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{Year: intPtr(2024)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), result.Set.ID))
	assert.Contains(t, cache.invalidated, result.Set.ID)

	err = svc.Delete(context.Background(), result.Set.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDateSetServiceExportCSV(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	result, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{
		Year:     intPtr(2024),
		NumDates: intPtr(3),
	})
	require.NoError(t, err)

	artifact, err := svc.Export(context.Background(), dto.ExportDateSetRequest{ID: result.Set.ID, Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", artifact.ContentType)
	assert.Contains(t, string(artifact.Content), "Date,Day,Month,Quarter")
	assert.Contains(t, string(artifact.Content), result.Set.Dates[0].ID)
}

func TestDateSetServiceExportInvalidFormat(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	_, err := svc.Export(context.Background(), dto.ExportDateSetRequest{ID: "some-id", Format: "xml"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDateSetServiceWeekdays(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	days := svc.Weekdays()
	require.Len(t, days, 7)
	assert.Equal(t, dto.WeekdayName{Code: 1, Name: "Monday"}, days[0])
	assert.Equal(t, dto.WeekdayName{Code: 7, Name: "Sunday"}, days[6])
}

func TestDateSetServiceList(t *testing.T) {
	svc := newTestService(&dateSetRepoStub{}, nil, nil)

	_, err := svc.Generate(context.Background(), dto.GenerateDateSetRequest{Year: intPtr(2024)})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), dto.GenerateDateSetRequest{Year: intPtr(2023)})
	require.NoError(t, err)

	summaries, pagination, err := svc.List(context.Background(), dto.DateSetListQuery{})
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 2, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
}
