package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Filter Bag Specification API",
        "description": "Single-use form links for filter bag specifications.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http", "https"],
    "tags": [
        {"name": "Forms", "description": "Form links and submissions"},
        {"name": "Sizes", "description": "Size catalog per bag type"},
        {"name": "Submissions", "description": "Submission exports"},
        {"name": "Ops", "description": "Health and readiness"}
    ],
    "paths": {
        "/api/send-form": {
            "post": {
                "tags": ["Forms"],
                "summary": "Email a single-use form link",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SendFormRequest"}}
                ],
                "responses": {
                    "200": {"description": "Link sent", "schema": {"$ref": "#/definitions/FormLinkEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "502": {"description": "Link stored but email failed", "schema": {"$ref": "#/definitions/FormLinkEnvelope"}}
                }
            }
        },
        "/api/generate-link": {
            "post": {
                "tags": ["Forms"],
                "summary": "Generate a form link without sending email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": false, "schema": {"$ref": "#/definitions/GenerateLinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "Link generated", "schema": {"$ref": "#/definitions/FormLinkEnvelope"}}
                }
            }
        },
        "/api/submit-form/{token}": {
            "post": {
                "tags": ["Forms"],
                "summary": "Submit the bag specification for a form link",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "token", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SubmitFormRequest"}}
                ],
                "responses": {
                    "200": {"description": "Submitted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Invalid form link or already submitted", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/sizes": {
            "post": {
                "tags": ["Sizes"],
                "summary": "Add a size to the catalog",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateSizeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Size already exists", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/sizes/{bag_type}": {
            "get": {
                "tags": ["Sizes"],
                "summary": "List sizes for a bag type, newest first",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "bag_type", "required": true, "type": "string", "enum": ["collar", "snap", "ring"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/sizes/{id}": {
            "delete": {
                "tags": ["Sizes"],
                "summary": "Delete a size",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Size not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/submissions/export": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Download submissions as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["pending", "submitted"]},
                    {"in": "query", "name": "po", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Dependencies reachable"},
                    "503": {"description": "A dependency is down"}
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"}
            }
        },
        "FormLink": {
            "type": "object",
            "properties": {
                "form_url": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "FormLinkEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/FormLink"}
            }
        },
        "SendFormRequest": {
            "type": "object",
            "required": ["recipient_email", "admin_quantity", "admin_size"],
            "properties": {
                "recipient_email": {"type": "string", "format": "email"},
                "po_number": {"type": "string"},
                "admin_quantity": {"type": "integer", "minimum": 1},
                "admin_size": {"type": "string"}
            }
        },
        "GenerateLinkRequest": {
            "type": "object",
            "properties": {
                "po_number": {"type": "string"}
            }
        },
        "BagSpec": {
            "type": "object",
            "required": ["bag_type", "client_name"],
            "properties": {
                "bag_type": {"type": "string", "enum": ["collar", "snap", "ring"]},
                "collar_od": {"type": "string"},
                "collar_id": {"type": "string"},
                "tubesheet_data": {"type": "string"},
                "tubesheet_dia": {"type": "string"},
                "client_name": {"type": "string"},
                "client_email": {"type": "string", "format": "email"}
            }
        },
        "SubmitFormRequest": {
            "type": "object",
            "properties": {
                "bags": {"type": "array", "maxItems": 1, "items": {"$ref": "#/definitions/BagSpec"}},
                "global_remarks": {"type": "string"}
            }
        },
        "CreateSizeRequest": {
            "type": "object",
            "required": ["size_name", "bag_type"],
            "properties": {
                "size_name": {"type": "string"},
                "bag_type": {"type": "string", "enum": ["collar", "snap", "ring"]}
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
