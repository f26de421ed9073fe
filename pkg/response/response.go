package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/datepool-api/internal/models"
	"github.com/noah-isme/datepool-api/internal/sampler"
	appErrors "github.com/noah-isme/datepool-api/pkg/errors"
)

// Envelope represents the common response contract. Advisory messages from
// configuration resolution travel in Meta under the "messages" key.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// WithMessages builds envelope metadata carrying resolver advisories. The
// list is always present so consumers get an explicit empty signal when
// resolution raised nothing.
func WithMessages(advisories []sampler.Advisory) map[string]interface{} {
	if advisories == nil {
		advisories = []sampler.Advisory{}
	}
	return map[string]interface{}{"messages": advisories}
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}, meta ...map[string]interface{}) {
	JSON(c, http.StatusCreated, data, nil, meta...)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
