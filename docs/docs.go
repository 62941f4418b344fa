// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `go generate ./cmd/portfolio`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/bonds": {
            "get": {
                "tags": ["bonds"],
                "summary": "List bond views",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            }
        },
        "/api/bonds/catalog/sync": {
            "post": {
                "tags": ["bonds"],
                "summary": "Refresh the bond issue catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.apiResponse"}}
                }
            }
        },
        "/api/bonds/trades": {
            "delete": {
                "tags": ["bonds"],
                "summary": "Delete bond trades for an issue",
                "parameters": [
                    {"type": "string", "name": "symbol", "in": "query", "required": true},
                    {"type": "string", "name": "platform", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            }
        },
        "/api/stocks": {
            "get": {
                "tags": ["stocks"],
                "summary": "List stock views",
                "description": "Shortlist rows merged with weighted CAGR and per-platform totals",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            }
        },
        "/api/stocks/shortlist/refresh": {
            "post": {
                "tags": ["stocks"],
                "summary": "Refresh quotes for every shortlisted symbol",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            }
        },
        "/api/stocks/shortlist/{symbol}": {
            "delete": {
                "tags": ["stocks"],
                "summary": "Remove a symbol from the shortlist",
                "parameters": [{"type": "string", "name": "symbol", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            }
        },
        "/api/stocks/trades": {
            "get": {
                "tags": ["stocks"],
                "summary": "List stock trades",
                "parameters": [
                    {"type": "string", "name": "symbol", "in": "query"},
                    {"type": "string", "name": "platform", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "string", "name": "order_by", "in": "query"},
                    {"type": "boolean", "name": "ascending", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            },
            "delete": {
                "tags": ["stocks"],
                "summary": "Delete stock trades for a symbol on a platform",
                "parameters": [
                    {"type": "string", "name": "symbol", "in": "query", "required": true},
                    {"type": "string", "name": "platform", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}}}
            }
        },
        "/api/trades": {
            "post": {
                "tags": ["trades"],
                "summary": "Record a trade",
                "description": "Stocks are priced at the requested minute; bonds are stored as entered",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.TradeInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.apiResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.apiResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.apiResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.apiResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handler.apiResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"},
                "meta": {"type": "object", "additionalProperties": true},
                "request_id": {"type": "string"}
            }
        },
        "service.TradeInput": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "date": {"type": "string"},
                "platform": {"type": "string"},
                "quantity": {"type": "string"},
                "symbol": {"type": "string"},
                "time": {"type": "string"},
                "type": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Portfolio Tracker API",
	Description:      "Trade entry, holdings views, and quote refresh.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
