// Package docs registers the OpenAPI description of the shell server with
// swag so echo-swagger can serve it under /swagger/.
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
        "/auth": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign-in view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authPageView"}},
                    "302": {"description": "Already signed in, redirected to /dashboard"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginForm"}}
                ],
                "responses": {
                    "303": {"description": "Signed in, redirected to /dashboard"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerForm"}}
                ],
                "responses": {
                    "303": {"description": "Registered, redirected to /dashboard"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "303": {"description": "Signed out, redirected to /auth"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Dashboard",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "Not signed in, redirected to /auth"}
                }
            }
        },
        "/cards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "List cards",
                "parameters": [
                    {"type": "integer", "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Full-text search", "name": "search", "in": "query"},
                    {"type": "string", "description": "Comma separated tags", "name": "tags", "in": "query"},
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "Not signed in, redirected to /auth"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/cards/new": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "New-card view",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "tags": ["cards"],
                "summary": "Create a card",
                "parameters": [
                    {"description": "Card", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.cardForm"}}
                ],
                "responses": {
                    "303": {"description": "Created, redirected to /cards/{id}"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/cards/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Card detail",
                "parameters": [{"type": "string", "description": "Card id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Update a card",
                "parameters": [{"type": "string", "description": "Card id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/cards/{id}/delete": {
            "post": {
                "tags": ["cards"],
                "summary": "Delete a card",
                "parameters": [{"type": "string", "description": "Card id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "303": {"description": "Deleted, redirected to /cards"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/media": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Media library",
                "parameters": [
                    {"type": "integer", "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "book, movie, series, ...", "name": "media_type", "in": "query"},
                    {"type": "string", "description": "Status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Comma separated tags", "name": "tags", "in": "query"},
                    {"type": "string", "description": "Full-text search", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "Not signed in, redirected to /auth"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Profile",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.authPageView": {
            "type": "object",
            "properties": {
                "view": {"type": "string"},
                "login": {"type": "string"},
                "register": {"type": "string"}
            }
        },
        "handler.loginForm": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.registerForm": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "full_name": {"type": "string", "maxLength": 100}
            }
        },
        "handler.cardForm": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "content": {"type": "string"},
                "content_type": {"type": "string", "enum": ["markdown", "text", "html"]},
                "summary": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "category": {"type": "string"},
                "priority": {"type": "integer", "minimum": 0},
                "is_favorite": {"type": "boolean"},
                "is_public": {"type": "boolean"},
                "notebook_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Knowledge card app shell",
	Description:      "Local application shell over the knowledge-card API. Every view is guarded by the session state.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
