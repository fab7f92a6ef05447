// Package docs registra la especificación OpenAPI servida en /swagger.
// Se mantiene alineada con las anotaciones godoc de los handlers (swag init -g cmd/api/main.go).
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
        "/register": {
            "post": {
                "tags": ["accounts"],
                "summary": "Register caregiver and elder",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/registerResponse"}},
                    "400": {"description": "missing or malformed field", "schema": {"$ref": "#/definitions/message"}},
                    "409": {"description": "email or login code already in use", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/login/caregiver": {
            "post": {
                "tags": ["accounts"],
                "summary": "Caregiver login",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/caregiverLoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/caregiverLoginResponse"}},
                    "401": {"description": "invalid email or password", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/login/elder": {
            "post": {
                "tags": ["accounts"],
                "summary": "Elder login with numeric code",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/elderLoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/elderLoginResponse"}},
                    "401": {"description": "invalid login code or password", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/me": {
            "get": {
                "tags": ["accounts"],
                "summary": "Current session identity",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["accounts"],
                "summary": "Revoke the current session token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/medications": {
            "post": {
                "tags": ["medications"],
                "summary": "Create medication",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medicationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/medication"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "elder not found", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/medications/{medicationID}": {
            "get": {
                "tags": ["medications"],
                "summary": "Get medication",
                "parameters": [{"in": "path", "name": "medicationID", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medication"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/message"}}
                }
            },
            "put": {
                "tags": ["medications"],
                "summary": "Replace medication fields",
                "parameters": [
                    {"in": "path", "name": "medicationID", "type": "string", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medicationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medication"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/message"}}
                }
            },
            "delete": {
                "tags": ["medications"],
                "summary": "Delete medication (history is kept)",
                "parameters": [{"in": "path", "name": "medicationID", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/medications/{medicationID}/history": {
            "get": {
                "tags": ["history"],
                "summary": "Adherence history of a medication (also after deletion)",
                "parameters": [{"in": "path", "name": "medicationID", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/historyEntry"}}}
                }
            }
        },
        "/elders/{elderID}/medications": {
            "get": {
                "tags": ["medications"],
                "summary": "List an elder's medications ordered by time of day",
                "parameters": [{"in": "path", "name": "elderID", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medication"}}}
                }
            }
        },
        "/elders/{elderID}/history": {
            "get": {
                "tags": ["history"],
                "summary": "Adherence history of an elder for one calendar day",
                "parameters": [
                    {"in": "path", "name": "elderID", "type": "string", "required": true},
                    {"in": "query", "name": "date", "type": "string", "required": true, "description": "YYYY-MM-DD in the reference timezone"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dayEntry"}}},
                    "400": {"description": "missing or malformed date", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/elders/{elderID}/reminders": {
            "get": {
                "tags": ["reminders"],
                "summary": "Pending reminders for today",
                "parameters": [{"in": "path", "name": "elderID", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/reminder"}}},
                    "404": {"description": "elder not found", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/history": {
            "post": {
                "tags": ["history"],
                "summary": "Record a dose status",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/recordRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/recordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "medication not found", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        }
    },
    "definitions": {
        "message": {"type": "object", "properties": {"message": {"type": "string"}}},
        "registerRequest": {
            "type": "object",
            "properties": {
                "caregiver_name": {"type": "string"},
                "email": {"type": "string"},
                "caregiver_password": {"type": "string"},
                "elder_name": {"type": "string"},
                "elder_login_code": {"type": "string"},
                "elder_password": {"type": "string"}
            }
        },
        "registerResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "caregiver_id": {"type": "string"}, "elder_id": {"type": "string"}}
        },
        "caregiverLoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "elderLoginRequest": {"type": "object", "properties": {"login_code": {"type": "string"}, "password": {"type": "string"}}},
        "summary": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}},
        "caregiverLoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "caregiver": {"$ref": "#/definitions/summary"},
                "elder": {"$ref": "#/definitions/summary"},
                "token": {"type": "string"}
            }
        },
        "elderLoginResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "elder": {"$ref": "#/definitions/summary"}, "token": {"type": "string"}}
        },
        "medicationRequest": {
            "type": "object",
            "properties": {
                "elder_id": {"type": "string"},
                "name": {"type": "string"},
                "dosage": {"type": "string"},
                "time": {"type": "string", "example": "08:00"},
                "photo_url": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "medication": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "elder_id": {"type": "string"},
                "name": {"type": "string"},
                "dosage": {"type": "string"},
                "time": {"type": "string"},
                "photo_url": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "recordRequest": {
            "type": "object",
            "properties": {
                "medication_id": {"type": "string"},
                "status": {"type": "string", "enum": ["on-time", "late", "missed"]}
            }
        },
        "historyEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "medication_id": {"type": "string"},
                "status": {"type": "string"},
                "recorded_at": {"type": "string", "format": "date-time"}
            }
        },
        "recordResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "entry": {"$ref": "#/definitions/historyEntry"}}
        },
        "dayEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "medication_id": {"type": "string"},
                "status": {"type": "string"},
                "recorded_at": {"type": "string", "format": "date-time"},
                "medication_name": {"type": "string"},
                "dosage": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "reminder": {
            "type": "object",
            "properties": {
                "medication_id": {"type": "string"},
                "name": {"type": "string"},
                "dosage": {"type": "string"},
                "time": {"type": "string"},
                "at": {"type": "string", "format": "date-time"},
                "in_seconds": {"type": "integer"},
                "title": {"type": "string"},
                "body": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Medication Reminder API",
	Description:      "Caregiver and elder medication reminders with adherence history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
