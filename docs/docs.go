// Package docs registers the OpenAPI description of the leads API with swag,
// which http-swagger serves under /swagger/. Keep it in step with the
// annotations in package handler; `swag init -g handler/routes.go` rebuilds it.
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
        "/leads": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every lead, newest first.",
                "produces": ["application/json"],
                "tags": ["Leads"],
                "summary": "List leads",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listLeadsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "description": "Registers an email. Submitting a known email returns the existing lead unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Leads"],
                "summary": "Register an email",
                "parameters": [
                    {"description": "Email to register", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createLeadRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createLeadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/leads/{id}": {
            "get": {
                "description": "Returns one lead. Clients poll this while waiting for approval.",
                "produces": ["application/json"],
                "tags": ["Leads"],
                "summary": "Get a lead",
                "parameters": [
                    {"type": "string", "description": "Lead id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.leadResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Approves a lead, or moves it back to pending.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Leads"],
                "summary": "Set approval",
                "parameters": [
                    {"type": "string", "description": "Lead id", "name": "id", "in": "path", "required": true},
                    {"description": "New approval state", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setApprovedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.leadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.createLeadRequest": {
            "type": "object",
            "properties": {"email": {"type": "string", "example": "someone@example.com"}}
        },
        "handler.createLeadResponse": {
            "type": "object",
            "properties": {
                "approved": {"type": "boolean"},
                "leadId": {"type": "string"},
                "message": {"type": "string", "example": "email registered"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "Bad Request"},
                "error": {"type": "string", "example": "email: is invalid"}
            }
        },
        "handler.leadResponse": {
            "type": "object",
            "properties": {"lead": {"$ref": "#/definitions/leadgate.Lead"}}
        },
        "handler.listLeadsResponse": {
            "type": "object",
            "properties": {"leads": {"type": "array", "items": {"$ref": "#/definitions/leadgate.Lead"}}}
        },
        "handler.setApprovedRequest": {
            "type": "object",
            "properties": {"approved": {"type": "boolean"}}
        },
        "leadgate.Lead": {
            "type": "object",
            "properties": {
                "approved": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "email": {"type": "string"},
                "id": {"type": "string", "format": "uuid"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Admin token. Format: \"Bearer {token}\".",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Leads API",
	Description:      "Captures emails and gates the app download behind operator approval.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
