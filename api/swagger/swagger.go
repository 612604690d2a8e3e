package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Alumni Directory API",
        "description": "Public alumni directory with a review queue for self-submissions",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Administrator login and credential management"},
        {"name": "Directory", "description": "Public searchable directory"},
        {"name": "Alumni", "description": "Admin directory management"},
        {"name": "Submissions", "description": "Self-submission review queue"},
        {"name": "Exports", "description": "Directory downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/api/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Administrator login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token and admin identity"},
                    "400": {"description": "Missing fields"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change the administrator password",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password changed"},
                    "400": {"description": "Validation failure"},
                    "401": {"description": "Current password incorrect or token invalid"}
                }
            }
        },
        "/api/alumni": {
            "get": {
                "tags": ["Directory"],
                "summary": "Search the alumni directory",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "college", "in": "query", "type": "string"},
                    {"name": "major", "in": "query", "type": "string"},
                    {"name": "sortBy", "in": "query", "type": "string", "default": "full_name"},
                    {"name": "sortOrder", "in": "query", "type": "string", "default": "asc"}
                ],
                "responses": {
                    "200": {"description": "Matching alumni and count"}
                }
            },
            "post": {
                "tags": ["Alumni"],
                "summary": "Add an alumni record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AlumniInput"}}
                ],
                "responses": {
                    "201": {"description": "Created record"},
                    "400": {"description": "Validation failure or duplicate email"}
                }
            }
        },
        "/api/alumni/{id}": {
            "get": {
                "tags": ["Directory"],
                "summary": "Fetch a single alumni record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Alumni record"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Alumni"],
                "summary": "Update an alumni record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AlumniInput"}}
                ],
                "responses": {
                    "200": {"description": "Updated record"},
                    "400": {"description": "Validation failure or duplicate email"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Alumni"],
                "summary": "Delete an alumni record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/filters": {
            "get": {
                "tags": ["Directory"],
                "summary": "List distinct filter options",
                "responses": {
                    "200": {"description": "Years, colleges and majors"}
                }
            }
        },
        "/api/submit-alumni": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a directory entry for review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AlumniInput"}}
                ],
                "responses": {
                    "201": {"description": "Submission id"},
                    "400": {"description": "Validation failure or duplicate email"}
                }
            }
        },
        "/api/pending-submissions": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List submissions awaiting review",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Pending submissions and count"}
                }
            }
        },
        "/api/approve-submission/{id}": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Approve a pending submission",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created alumni record"},
                    "404": {"description": "Submission not found"}
                }
            }
        },
        "/api/reject-submission/{id}": {
            "delete": {
                "tags": ["Submissions"],
                "summary": "Reject a pending submission",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Rejected"},
                    "404": {"description": "Submission not found"}
                }
            }
        },
        "/api/export/alumni": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the full directory",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "default": "csv", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "CSV or PDF download"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "required": ["currentPassword", "newPassword"],
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string", "minLength": 6}
            }
        },
        "AlumniInput": {
            "type": "object",
            "required": ["full_name", "email", "year_graduated", "current_college", "college_major"],
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string", "format": "email"},
                "year_graduated": {"type": "integer"},
                "current_college": {"type": "string"},
                "college_major": {"type": "string"},
                "second_major": {"type": "string"},
                "profession": {"type": "string"},
                "linkedin_url": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
