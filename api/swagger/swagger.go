package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Datepool API",
        "description": "Stratified random date sampling service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "DateSets", "description": "Generation, retrieval, and export of stratified random date sets"}
    ],
    "paths": {
        "/date-sets": {
            "get": {
                "tags": ["DateSets"],
                "summary": "List stored date sets",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["DateSets"],
                "summary": "Generate a stratified random date set",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateDateSetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/date-sets/generate": {
            "get": {
                "tags": ["DateSets"],
                "summary": "Generate a date set from query-string parameters",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "numDates", "in": "query", "type": "integer"},
                    {"name": "exclude", "in": "query", "type": "string", "description": "Comma-separated weekday codes, 1=Monday..7=Sunday"},
                    {"name": "limDays", "in": "query", "type": "integer"},
                    {"name": "limMonths", "in": "query", "type": "integer"},
                    {"name": "limQuarters", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/date-sets/{id}": {
            "get": {
                "tags": ["DateSets"],
                "summary": "Retrieve a stored date set by identifier",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["DateSets"],
                "summary": "Delete a stored date set",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/date-sets/{id}/regenerate": {
            "post": {
                "tags": ["DateSets"],
                "summary": "Regenerate a stored set with overrides",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateDateSetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/date-sets/{id}/export": {
            "get": {
                "tags": ["DateSets"],
                "summary": "Export a stored date set as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/weekdays": {
            "get": {
                "tags": ["DateSets"],
                "summary": "Canonical weekday-name lookup",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateDateSetRequest": {
            "type": "object",
            "properties": {
                "year": {"type": "integer", "description": "1970-2038; out-of-range values fall back to the current year"},
                "numDates": {"type": "integer", "description": "1-366, default 24"},
                "exclude": {"type": "array", "items": {"type": "integer"}, "description": "Weekday codes to skip, 1=Monday..7=Sunday"},
                "limDays": {"type": "integer", "description": "Max occurrences per weekday; omit for unlimited"},
                "limMonths": {"type": "integer", "description": "Max occurrences per month; omit for unlimited"},
                "limQuarters": {"type": "integer", "description": "Max occurrences per quarter; omit for unlimited"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object", "description": "meta.messages carries advisory messages from configuration resolution"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
