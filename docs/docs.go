// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/greetingws/main.go -o docs
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Welcome page",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.welcomeResponse"}}
                }
            }
        },
        "/hello": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Static hello",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.welcomeResponse"}}
                }
            }
        },
        "/hello2": {
            "get": {
                "produces": ["text/html"],
                "tags": ["public"],
                "summary": "Personalised hello",
                "parameters": [
                    {"type": "string", "description": "Name to greet", "name": "name", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/hello3": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Configured welcome message",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.welcomeResponse"}}
                }
            }
        },
        "/api/greetings": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["greetings"],
                "summary": "List greetings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.greetingListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["greetings"],
                "summary": "Create a greeting",
                "parameters": [
                    {"type": "string", "description": "Replay protection key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Greeting", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createGreetingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.greetingResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.greetingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/greetings/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["greetings"],
                "summary": "Get a greeting",
                "parameters": [
                    {"type": "string", "description": "Greeting ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.greetingResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["greetings"],
                "summary": "Update a greeting",
                "parameters": [
                    {"type": "string", "description": "Greeting ID", "name": "id", "in": "path", "required": true},
                    {"description": "Replacement text and last read version", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateGreetingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.greetingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}],
                "tags": ["greetings"],
                "summary": "Delete a greeting",
                "parameters": [
                    {"type": "string", "description": "Greeting ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/roles": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "List effective roles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.roleResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/roles/{code}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Get an effective role by code",
                "parameters": [
                    {"type": "string", "description": "Role code (e.g. USER)", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/actuators/health": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["actuators"],
                "summary": "Dependency readiness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/actuators/info": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["actuators"],
                "summary": "Service information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Info"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.welcomeResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "server_time": {"type": "string"}}
        },
        "handler.createGreetingRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string", "maxLength": 280}}
        },
        "handler.updateGreetingRequest": {
            "type": "object",
            "required": ["text", "version"],
            "properties": {"text": {"type": "string", "maxLength": 280}, "version": {"type": "integer", "minimum": 0}}
        },
        "handler.greetingLinks": {
            "type": "object",
            "properties": {"self": {"type": "string"}}
        },
        "handler.greetingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "reference_id": {"type": "string"},
                "version": {"type": "integer"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_by": {"type": "string"},
                "updated_at": {"type": "string"},
                "_links": {"$ref": "#/definitions/handler.greetingLinks"}
            }
        },
        "handler.greetingListResponse": {
            "type": "object",
            "properties": {
                "greetings": {"type": "array", "items": {"$ref": "#/definitions/handler.greetingResponse"}},
                "count": {"type": "integer"}
            }
        },
        "handler.roleResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "label": {"type": "string"},
                "ordinal": {"type": "integer"},
                "effective_at": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "error": {"type": "string"}}
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        },
        "handler.Rule": {
            "type": "object",
            "properties": {"prefix": {"type": "string"}, "authority": {"type": "string"}}
        },
        "handler.Info": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "version": {"type": "string"},
                "env": {"type": "string"},
                "go_version": {"type": "string"},
                "started_at": {"type": "string"},
                "auth_realm": {"type": "string"},
                "filter_effective_roles": {"type": "boolean"},
                "access_default_allow": {"type": "boolean"},
                "access_rules": {"type": "array", "items": {"$ref": "#/definitions/handler.Rule"}}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Greeting Service API",
	Description:      "Greeting web service secured with HTTP Basic authentication and prefix-based access rules.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
