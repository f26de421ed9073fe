package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/datepool-api/internal/dto"
	"github.com/noah-isme/datepool-api/internal/models"
	"github.com/noah-isme/datepool-api/internal/service"
	appErrors "github.com/noah-isme/datepool-api/pkg/errors"
	"github.com/noah-isme/datepool-api/pkg/response"
)

type dateSetService interface {
	Generate(ctx context.Context, req dto.GenerateDateSetRequest) (*service.DateSetResult, error)
	Regenerate(ctx context.Context, id string, req dto.GenerateDateSetRequest) (*service.DateSetResult, error)
	Get(ctx context.Context, id string) (*service.DateSetResult, error)
	List(ctx context.Context, query dto.DateSetListQuery) ([]dto.DateSetSummary, *models.Pagination, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, req dto.ExportDateSetRequest) (*service.ExportArtifact, error)
	Weekdays() []dto.WeekdayName
}

// DateSetHandler exposes the date-set endpoints.
type DateSetHandler struct {
	service dateSetService
}

// NewDateSetHandler constructs the handler.
func NewDateSetHandler(svc *service.DateSetService) *DateSetHandler {
	return &DateSetHandler{service: svc}
}

// Generate godoc
// @Summary Generate a stratified random date set
// @Description Advisory messages about unsatisfiable quota combinations are returned in meta.messages; generation still proceeds.
// @Tags DateSets
// @Accept json
// @Produce json
// @Param payload body dto.GenerateDateSetRequest true "Generation parameters"
// @Success 201 {object} response.Envelope
// @Router /date-sets [post]
func (h *DateSetHandler) Generate(c *gin.Context) {
	var req dto.GenerateDateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Set, response.WithMessages(result.Messages))
}

// GenerateFromQuery godoc
// @Summary Generate a date set from query-string parameters
// @Description Accepts exclude as a comma-separated list (exclude=6,7) or repeated params. Unparsable values are ignored; out-of-range scalars are clamped.
// @Tags DateSets
// @Produce json
// @Param year query int false "Calendar year (1970-2038)"
// @Param numDates query int false "Number of dates (1-366, default 24)"
// @Param exclude query string false "Weekday codes to exclude, 1=Monday..7=Sunday"
// @Param limDays query int false "Max occurrences per weekday"
// @Param limMonths query int false "Max occurrences per month"
// @Param limQuarters query int false "Max occurrences per quarter"
// @Success 201 {object} response.Envelope
// @Router /date-sets/generate [get]
func (h *DateSetHandler) GenerateFromQuery(c *gin.Context) {
	result, err := h.service.Generate(c.Request.Context(), queryGenerateRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Set, response.WithMessages(result.Messages))
}

// Regenerate godoc
// @Summary Regenerate a stored set with overrides
// @Description Parameters absent from the payload keep the stored set's configuration. Produces a new set under a new identifier.
// @Tags DateSets
// @Accept json
// @Produce json
// @Param id path string true "Date set ID"
// @Param payload body dto.GenerateDateSetRequest true "Parameter overrides"
// @Success 201 {object} response.Envelope
// @Router /date-sets/{id}/regenerate [post]
func (h *DateSetHandler) Regenerate(c *gin.Context) {
	var req dto.GenerateDateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid regenerate payload"))
		return
	}
	result, err := h.service.Regenerate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Set, response.WithMessages(result.Messages))
}

// Get godoc
// @Summary Retrieve a stored date set by identifier
// @Tags DateSets
// @Produce json
// @Param id path string true "Date set ID"
// @Success 200 {object} response.Envelope
// @Router /date-sets/{id} [get]
func (h *DateSetHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Set, nil, response.WithMessages(result.Messages))
}

// List godoc
// @Summary List stored date sets
// @Tags DateSets
// @Produce json
// @Param year query int false "Filter by year"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /date-sets [get]
func (h *DateSetHandler) List(c *gin.Context) {
	query := dto.DateSetListQuery{Year: queryInt(c, "year")}
	if page := queryInt(c, "page"); page != nil {
		query.Page = *page
	}
	if size := queryInt(c, "pageSize"); size != nil {
		query.PageSize = *size
	}
	summaries, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Delete godoc
// @Summary Delete a stored date set
// @Tags DateSets
// @Param id path string true "Date set ID"
// @Success 204
// @Router /date-sets/{id} [delete]
func (h *DateSetHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a stored date set as CSV or PDF
// @Tags DateSets
// @Produce octet-stream
// @Param id path string true "Date set ID"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200
// @Router /date-sets/{id}/export [get]
func (h *DateSetHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	artifact, err := h.service.Export(c.Request.Context(), dto.ExportDateSetRequest{
		ID:     c.Param("id"),
		Format: format,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+artifact.Filename)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}

// Weekdays godoc
// @Summary Canonical weekday-name lookup (1=Monday..7=Sunday)
// @Tags DateSets
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /weekdays [get]
func (h *DateSetHandler) Weekdays(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Weekdays(), nil)
}

// queryGenerateRequest decodes the query-string form of the generation
// parameters. Unparsable numbers count as absent; an exclude parameter that
// is present but empty clears the exclusion list.
func queryGenerateRequest(c *gin.Context) dto.GenerateDateSetRequest {
	req := dto.GenerateDateSetRequest{
		Year:        queryInt(c, "year"),
		NumDates:    queryInt(c, "numDates"),
		LimDays:     queryInt(c, "limDays"),
		LimMonths:   queryInt(c, "limMonths"),
		LimQuarters: queryInt(c, "limQuarters"),
	}
	if values, ok := c.GetQueryArray("exclude"); ok {
		req.Exclude = []int{}
		for _, value := range values {
			for _, part := range strings.Split(value, ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					req.Exclude = append(req.Exclude, n)
				}
			}
		}
	}
	return req
}

func queryInt(c *gin.Context, key string) *int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}
