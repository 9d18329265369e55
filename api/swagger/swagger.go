package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Suvidha Municipal Services API",
        "description": "Self-service kiosk and admin back office for the electricity, gas and water departments",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Admin portal authentication"},
        {"name": "Applications", "description": "Service connection applications"},
        {"name": "Complaints", "description": "Citizen complaints"},
        {"name": "Billing", "description": "Prepaid recharges, receipts and meter readings"},
        {"name": "Tariffs", "description": "Rate table management"},
        {"name": "Settings", "description": "Department configuration"},
        {"name": "Dashboard", "description": "Admin summary and audit trail"},
        {"name": "Documents", "description": "Signed document and receipt downloads"}
    ],
    "paths": {
        "/{dept}/applications/submit": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit an application from the kiosk",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string", "enum": ["electricity", "gas", "water"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/applications/{number}/status": {
            "get": {
                "tags": ["Applications"],
                "summary": "Track an application by its public number",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "number", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/complaints/submit": {
            "post": {
                "tags": ["Complaints"],
                "summary": "Submit a complaint from the kiosk",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitComplaintRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/payments/prepaid-recharge": {
            "post": {
                "tags": ["Billing"],
                "summary": "Record a prepaid recharge and issue a receipt",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PrepaidRechargeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/payments/receipts/{number}": {
            "get": {
                "tags": ["Billing"],
                "summary": "Issue a signed download token for a receipt",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "number", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/consumer/meter-reading": {
            "post": {
                "tags": ["Billing"],
                "summary": "Submit a meter reading",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MeterReadingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/documents/{token}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download a document or receipt by signed token",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File content"}
                }
            }
        },
        "/{dept}/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log into the department admin portal",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/verify": {
            "get": {
                "tags": ["Auth"],
                "summary": "Verify an access token",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the caller's refresh tokens",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Department dashboard summary",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/audit-logs": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Recent audit trail entries",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "resource", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/applications": {
            "get": {
                "tags": ["Applications"],
                "summary": "List applications",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/applications/export": {
            "get": {
                "tags": ["Applications"],
                "summary": "Export applications as CSV",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV content"}
                }
            }
        },
        "/{dept}/admin/applications/{id}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Get an application with stage history",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Applications"],
                "summary": "Update application status",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateApplicationStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/complaints": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List complaints",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/complaints/{id}": {
            "get": {
                "tags": ["Complaints"],
                "summary": "Get a complaint",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Complaints"],
                "summary": "Update a complaint",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateComplaintRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/tariffs": {
            "get": {
                "tags": ["Tariffs"],
                "summary": "List tariff slabs",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tariffs"],
                "summary": "Create a tariff slab",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TariffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/tariffs/{id}": {
            "put": {
                "tags": ["Tariffs"],
                "summary": "Update a tariff slab",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TariffRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Tariffs"],
                "summary": "Delete a tariff slab",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/{dept}/admin/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "List department settings",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace a batch of department settings",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/{dept}/admin/documents/{id}/signed-url": {
            "get": {
                "tags": ["Documents"],
                "summary": "Issue a fresh signed download token for a document",
                "parameters": [
                    {"name": "dept", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitApplicationRequest": {
            "type": "object",
            "properties": {
                "application_type": {"type": "string"},
                "applicant_name": {"type": "string"},
                "mobile": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "connection_details": {"type": "object"},
                "documents": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/DocumentUpload"}
                }
            },
            "required": ["application_type", "applicant_name", "mobile", "address"]
        },
        "UpdateApplicationStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "stage_label": {"type": "string"},
                "assigned_engineer": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["status"]
        },
        "SubmitComplaintRequest": {
            "type": "object",
            "properties": {
                "complaint_type": {"type": "string"},
                "complainant_name": {"type": "string"},
                "mobile": {"type": "string"},
                "address": {"type": "string"},
                "description": {"type": "string"},
                "priority": {"type": "string"},
                "urgency": {"type": "integer"},
                "documents": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/DocumentUpload"}
                }
            },
            "required": ["complaint_type", "complainant_name", "mobile", "description"]
        },
        "UpdateComplaintRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "assigned_engineer": {"type": "string"},
                "priority": {"type": "string"},
                "resolution_notes": {"type": "string"}
            },
            "required": ["status"]
        },
        "PrepaidRechargeRequest": {
            "type": "object",
            "properties": {
                "consumer_number": {"type": "string"},
                "consumer_name": {"type": "string"},
                "mobile": {"type": "string"},
                "amount": {"type": "number"},
                "payment_method": {"type": "string"}
            },
            "required": ["consumer_number", "amount"]
        },
        "MeterReadingRequest": {
            "type": "object",
            "properties": {
                "consumer_number": {"type": "string"},
                "reading_value": {"type": "number"},
                "reading_date": {"type": "string"}
            },
            "required": ["consumer_number", "reading_value"]
        },
        "TariffRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "unit_from": {"type": "number"},
                "unit_to": {"type": "number"},
                "rate": {"type": "number"},
                "fixed_charge": {"type": "number"},
                "effective_from": {"type": "string"}
            },
            "required": ["category", "rate"]
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "settings": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SettingItem"}
                }
            },
            "required": ["settings"]
        },
        "SettingItem": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"},
                "type": {"type": "string"}
            },
            "required": ["key", "value"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RefreshRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "DocumentUpload": {
            "type": "object",
            "properties": {
                "file_name": {"type": "string"},
                "mime_type": {"type": "string"},
                "content": {"type": "string", "description": "Base64 encoded file body"}
            },
            "required": ["file_name", "mime_type", "content"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
