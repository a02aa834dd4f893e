// Package docs registers the OpenAPI document served under /swagger.
// Regenerate the annotations with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

// @tag.name Users
// @tag.description Registration, login, profiles and account roles

// @tag.name Teams
// @tag.description Teams, their members and linked projects

// @tag.name Projects
// @tag.description Projects and their members

// @tag.name Board
// @tag.description Column order, drag and drop moves and live updates

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Comments
// @tag.description Task discussion

// @tag.name Reports
// @tag.description Dashboard charts

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
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Users"},
        {"name": "Teams"},
        {"name": "Projects"},
        {"name": "Board"},
        {"name": "Tasks"},
        {"name": "Comments"},
        {"name": "Reports"}
    ],
    "paths": {
        "/auth/register": {"post": {"tags": ["Users"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["Users"], "summary": "Log in and receive a token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "All users", "responses": {"200": {"description": "OK"}}}},
        "/users/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Current user", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Edit own profile", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/me/password": {"post": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Change own password", "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}}},
        "/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "One user", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Edit a user's profile", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/users/{id}/role": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Change a user's account role", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/teams": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "All teams", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Create a team", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/teams/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "One team with members and linked projects", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Rename a team or change its description", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Delete a team", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/teams/{id}/members": {"post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Add a user to a team", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}},
        "/teams/{id}/members/{user_id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Remove a user from a team", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "user_id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}},
        "/teams/{id}/projects": {"post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Link a project to a team", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}},
        "/teams/{id}/projects/{project_id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Unlink a project from a team", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "project_id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}},
        "/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Projects the current user leads or belongs to", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Create a project with an empty four-column board", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/projects/{id}/board": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Board"], "summary": "Board of a project", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Board"], "summary": "Replace the whole board", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/projects/{id}/board/move": {"post": {"security": [{"BearerAuth": []}], "tags": ["Board"], "summary": "Apply a finished drag gesture", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/projects/{id}/board/columns/{column_id}/tasks": {"get": {"security": [{"BearerAuth": []}], "tags": ["Board"], "summary": "Tasks of one column in board order", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "column_id", "in": "path", "required": true, "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/tasks": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Tasks visible to the current user", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Create a task and place it on the board", "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Change a task's status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/reports/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["Reports"], "summary": "All report series for the current user's projects", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "VisionFlow API",
	Description:      "Projects, Kanban boards and tasks for VisionFlow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
