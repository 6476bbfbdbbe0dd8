// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a new account",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Log in with email and password",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Clear the session cookie", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/ws": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Stream of blog_liked events",
                "parameters": [{"type": "string", "in": "query", "name": "token", "description": "JWT for clients that cannot set headers"}],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/blogs": {
            "get": {
                "tags": ["blogs"], "summary": "Latest and trending public blogs", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "query", "name": "search", "description": "Words to match in title or content"},
                    {"type": "string", "in": "query", "name": "tag", "description": "Exact hashtag"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Publish a blog",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateBlogRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/blogs/id/{id}": {
            "get": {
                "tags": ["blogs"], "summary": "Read a blog by id",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/blogs/{slug}": {
            "get": {
                "tags": ["blogs"], "summary": "Read a blog",
                "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}],
                "responses": {"200": {"description": "OK"}, "304": {"description": "Not Modified"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/blogs/{id}": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Edit a blog",
                "description": "Only fields present in the body change. The slug is kept.",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.BlogPatch"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Delete a blog",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/blogs/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Like or unlike a blog",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LikeState"}}, "404": {"description": "Not Found"}}
            }
        },
        "/users/{username}": {
            "get": {
                "tags": ["users"], "summary": "Public profile of a user",
                "parameters": [{"type": "string", "in": "path", "name": "username", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/profile": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Edit the caller's profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProfilePatch"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/users/deactivate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Deactivate the caller's account", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "models.RegisterRequest": {
            "type": "object", "required": ["email", "password", "username"],
            "properties": {
                "username": {"type": "string", "minLength": 3, "maxLength": 30},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "models.LoginRequest": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.CreateBlogRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "cover_image": {"type": "string"},
                "hashtags": {"type": "array", "maxItems": 5, "items": {"type": "string"}},
                "visibility": {"type": "string", "enum": ["public", "private"]}
            }
        },
        "models.BlogPatch": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "cover_image": {"type": "string"},
                "hashtags": {"type": "array", "maxItems": 5, "items": {"type": "string"}},
                "visibility": {"type": "string", "enum": ["public", "private"]}
            }
        },
        "models.SocialLinkPatch": {
            "type": "object",
            "properties": {"url": {"type": "string"}, "visible": {"type": "boolean"}}
        },
        "models.ProfilePatch": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "profile_picture": {"type": "string"},
                "background_image": {"type": "string"},
                "spotify_track": {"type": "string"},
                "is_public": {"type": "boolean"},
                "social_links": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.SocialLinkPatch"}}
            }
        },
        "models.LikeState": {
            "type": "object",
            "properties": {"likes": {"type": "integer"}, "liked": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "inkpost API",
	Description:      "Blogging API: posts, likes, profiles and a like-event stream.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
