// Package docs registers the generated swagger spec for the API.
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
        "/auth/signin": {
            "post": {
                "summary": "Sign the reviewer in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/submissions": {
            "get": {
                "summary": "List all submissions (admin)",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Submit a manager profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Validation failed"}
                }
            },
            "put": {
                "summary": "Approve or reject a submission (admin)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad request"},
                    "404": {"description": "Submission not found"}
                }
            }
        },
        "/api/managers": {
            "get": {
                "summary": "Public manager directory",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/managers/manager": {
            "get": {
                "summary": "Look a manager up by identifier",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Manager not found"}
                }
            }
        },
        "/api/maintenance/rebuild": {
            "post": {
                "summary": "Rebuild the managers sheet from approved submissions (admin)",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/maintenance/repair": {
            "post": {
                "summary": "Repair malformed submission rows (admin)",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Manager Directory API",
	Description:      "Community manager profile directory with a submission review workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
