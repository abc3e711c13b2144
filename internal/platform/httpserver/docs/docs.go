// Package docs registers the OpenAPI document served under /swagger/.
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
        "/v1/campaigns": {
            "post": {
                "tags": ["campaigns"],
                "summary": "Create a draft campaign",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/campaigns/{campaign_id}/status": {
            "post": {
                "tags": ["campaigns"],
                "summary": "Request a campaign status transition",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/campaigns/{campaign_id}/versions": {
            "post": {
                "tags": ["versions"],
                "summary": "Render and store a new campaign version",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/approvals": {
            "post": {
                "tags": ["approvals"],
                "summary": "Start an approval workflow cycle",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/approvals/{workflow_id}/decisions": {
            "post": {
                "tags": ["approvals"],
                "summary": "Submit an approver or customer decision",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/share/{token}": {
            "get": {
                "tags": ["share"],
                "summary": "Resolve a public share token",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/projects/{project_id}/stage-moves": {
            "post": {
                "tags": ["pipeline"],
                "summary": "Move a project to another pipeline stage",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/tasks/{task_id}/dependencies": {
            "put": {
                "tags": ["tasks"],
                "summary": "Replace a task's dependency set",
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
	Title:            "Pressroom API",
	Description:      "Campaign approval and project pipeline workflows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
