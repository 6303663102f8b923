// Package docs holds the OpenAPI document served at /swagger. Regenerate with
// `swag init -g cmd/server/main.go -o docs` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/quotations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "List quotations",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Pagination offset", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Pagination limit (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Quotations", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "Create a quotation",
                "parameters": [
                    {"description": "Document", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.QuotationInput"}}
                ],
                "responses": {
                    "201": {"description": "Quotation created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Customer, sales person or line items missing", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Master data service unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/quotations/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "Preview a quotation",
                "parameters": [
                    {"description": "Draft document", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.QuotationInput"}}
                ],
                "responses": {
                    "200": {"description": "Computed draft", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Branch, customer, address or item not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/quotations/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["exports"],
                "summary": "Export the quotation register",
                "responses": {
                    "200": {"description": "CSV register", "schema": {"type": "file"}}
                }
            }
        },
        "/quotations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "Get quotation by ID",
                "parameters": [{"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Quotation", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Quotation not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "Replace a quotation",
                "parameters": [
                    {"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Document", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.QuotationInput"}}
                ],
                "responses": {
                    "200": {"description": "Quotation updated", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Quotation not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "Delete a quotation",
                "parameters": [{"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Quotation deleted", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/quotations/{id}/context": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotations"],
                "summary": "Change document type, branch or address",
                "parameters": [
                    {"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ChangeContextRequest"}}
                ],
                "responses": {
                    "200": {"description": "Quotation repriced", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/quotations/{id}/workbook": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["exports"],
                "summary": "Download a quotation workbook",
                "parameters": [{"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "XLSX workbook", "schema": {"type": "file"}}
                }
            }
        },
        "/quotations/{id}/archive": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Archive a quotation workbook",
                "parameters": [{"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Workbook archived", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "502": {"description": "Upload failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/quotations/{id}/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Email a quotation to the customer",
                "parameters": [{"type": "string", "description": "Quotation ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Email sent", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "422": {"description": "Customer has no email address", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ChangeContextRequest": {
            "type": "object",
            "properties": {
                "billing_address_id": {"type": "string", "example": "addr-1"},
                "branch_id": {"type": "string", "example": "br-pune"},
                "document_type": {"type": "string", "example": "purchase_order"},
                "shipping_address_id": {"type": "string", "example": "addr-2"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "service.QuotationInput": {
            "type": "object",
            "properties": {
                "billing_address_id": {"type": "string"},
                "branch_id": {"type": "string"},
                "customer_id": {"type": "string"},
                "discounts": {"type": "array", "items": {"type": "object"}},
                "document_number": {"type": "string"},
                "document_type": {"type": "string"},
                "extra_charges": {"type": "array", "items": {"type": "object"}},
                "include_round_off": {"type": "boolean"},
                "issue_date": {"type": "string"},
                "lines": {"type": "array", "items": {"type": "object"}},
                "notes": {"type": "string"},
                "sales_person_id": {"type": "string"},
                "series_id": {"type": "string"},
                "shipping_address_id": {"type": "string"},
                "terms": {"type": "string"},
                "valid_until": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "quotedesk API",
	Description:      "GST line-item tax and totals engine for quotations and other sales and purchase documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
