package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "College Predictor API",
        "description": "Rank and budget eligibility search over a merged college dataset",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Colleges", "description": "Eligibility search, detail and comparison"},
        {"name": "Selections", "description": "Per-session selected colleges"},
        {"name": "Exports", "description": "Spreadsheet exports with signed download links"},
        {"name": "Dataset", "description": "Image reconciliation of the loaded dataset"}
    ],
    "paths": {
        "/colleges": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Search colleges by rank and budget",
                "parameters": [
                    {"name": "rank", "in": "query", "type": "integer", "required": true, "minimum": 1},
                    {"name": "tuitionBudget", "in": "query", "type": "integer", "default": 2000000},
                    {"name": "overallBudget", "in": "query", "type": "integer", "default": 3000000},
                    {"name": "state", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"$ref": "#/parameters/SessionHeader"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/compare": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Compare exactly two qualifying colleges",
                "parameters": [
                    {"name": "name", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "required": true},
                    {"name": "rank", "in": "query", "type": "integer", "required": true},
                    {"name": "tuitionBudget", "in": "query", "type": "integer"},
                    {"name": "overallBudget", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Not exactly two colleges", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/{slug}": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Detail view of a qualifying college",
                "parameters": [
                    {"name": "slug", "in": "path", "type": "string", "required": true},
                    {"name": "rank", "in": "query", "type": "integer", "required": true},
                    {"name": "tuitionBudget", "in": "query", "type": "integer"},
                    {"name": "overallBudget", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown or not qualifying", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections": {
            "get": {
                "tags": ["Selections"],
                "summary": "List selected colleges",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Selections"],
                "summary": "Select a college",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown college", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Selections"],
                "summary": "Clear all selections",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}],
                "responses": {"204": {"description": "Cleared"}}
            }
        },
        "/selections/{slug}": {
            "delete": {
                "tags": ["Selections"],
                "summary": "Unselect a college",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "slug", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export all results or the selected colleges",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a rendered export",
                "produces": ["application/octet-stream"],
                "parameters": [{"name": "token", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Unknown token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Link expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reconciliation": {
            "get": {
                "tags": ["Dataset"],
                "summary": "Mismatched and orphaned images",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "parameters": {
        "SessionHeader": {"name": "X-Session-ID", "in": "header", "type": "string", "required": false}
    },
    "definitions": {
        "SelectionRequest": {
            "type": "object",
            "required": ["college"],
            "properties": {
                "college": {"type": "string"}
            }
        },
        "ExportRequest": {
            "type": "object",
            "required": ["rank", "scope", "client_name"],
            "properties": {
                "rank": {"type": "integer"},
                "tuition_budget": {"type": "integer"},
                "overall_budget": {"type": "integer"},
                "states": {"type": "array", "items": {"type": "string"}},
                "scope": {"type": "string", "enum": ["all", "selected"]},
                "client_name": {"type": "string"},
                "format": {"type": "string", "enum": ["xlsx", "csv", "pdf"]}
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
                "meta": {"type": "object"}
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
