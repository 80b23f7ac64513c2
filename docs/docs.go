// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/customers/{id}/house-previews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "List a customer's house previews",
                "parameters": [
                    {"type": "integer", "description": "Customer ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/house-previews": {
            "get": {
                "description": "Paginated listing, most recent first. An unknown status filter is ignored.",
                "produces": ["application/json"],
                "tags": ["house-previews"],
                "summary": "List house previews",
                "parameters": [
                    {"enum": ["pending", "processing", "completed", "cancelled"], "type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 15, "description": "Page size (max 100)", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.PaginatedResponse"}}}]}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            },
            "post": {
                "description": "Validates the whole submission before anything is stored. The customer is matched by phone and created when unknown.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["house-previews"],
                "summary": "Submit a house preview",
                "parameters": [
                    {"type": "string", "description": "Customer name", "name": "customer[name]", "in": "formData", "required": true},
                    {"type": "string", "description": "10 digit contact number", "name": "customer[phone]", "in": "formData", "required": true},
                    {"type": "string", "description": "Customer address", "name": "customer[address]", "in": "formData", "required": true},
                    {"type": "string", "description": "Colours separated by ::", "name": "colors", "in": "formData"},
                    {"type": "string", "description": "Message for the designer", "name": "customer_message", "in": "formData"},
                    {"type": "file", "description": "PNG image (max 10MB)", "name": "png_image", "in": "formData", "required": true},
                    {"type": "file", "description": "SVG overlay (max 5MB)", "name": "svg_image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/models.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HousePreviewResponse"}}}]}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/house-previews/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["house-previews"],
                "summary": "Show a house preview",
                "parameters": [
                    {"type": "integer", "description": "House preview ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HousePreviewResponse"}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            },
            "put": {
                "description": "Only the status changes; any status may follow any other.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["house-previews"],
                "summary": "Update the status of a house preview",
                "parameters": [
                    {"type": "integer", "description": "House preview ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HousePreviewResponse"}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            },
            "delete": {
                "description": "Removes the stored images and then the record.",
                "produces": ["application/json"],
                "tags": ["house-previews"],
                "summary": "Delete a house preview",
                "parameters": [
                    {"type": "integer", "description": "House preview ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/house-previews/{id}/processed": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Sets status completed and records the authenticated staff member and time.",
                "produces": ["application/json"],
                "tags": ["house-previews"],
                "summary": "Mark a house preview as processed",
                "parameters": [
                    {"type": "integer", "description": "House preview ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HousePreviewResponse"}}}]}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.CustomerResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "created_at": {"type": "string"},
                "deleted_at": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "models.HousePreviewResponse": {
            "type": "object",
            "properties": {
                "colors": {"type": "string"},
                "colors_array": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "customer": {"$ref": "#/definitions/models.CustomerResponse"},
                "customer_id": {"type": "integer"},
                "customer_message": {"type": "string"},
                "deleted_at": {"type": "string"},
                "id": {"type": "integer"},
                "png_image": {"type": "string"},
                "png_image_url": {"type": "string"},
                "processed_at": {"type": "string"},
                "processed_by": {"type": "integer"},
                "status": {"type": "string", "enum": ["pending", "processing", "completed", "cancelled"]},
                "svg_image": {"type": "string"},
                "svg_image_url": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.PaginatedResponse": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.HousePreviewResponse"}},
                "from": {"type": "integer"},
                "last_page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "to": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "models.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"description": "Status is one of pending, processing, completed or cancelled.", "type": "string", "example": "processing"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "House Preview Backend API",
	Description:      "Backend API for house preview submissions: customers upload a PNG of their house with optional colours, an SVG overlay and a message, and staff track each submission through its status.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
