// Package apidocs registers the OpenAPI description served by /swagger/doc.json.
// Regenerate with `swag init -g cmd/scored/docs.go -o internal/apidocs`.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "scored maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/options": {
            "get": {
                "description": "Categorical choices in encoder order and numeric bounds.",
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "List valid inputs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.OptionsResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Encodes the categorical fields and scores one student record.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Predict a math score",
                "parameters": [
                    {
                        "description": "Student record",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Artifact state and counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "accepted": {"type": "array", "items": {"type": "string"}, "example": ["female", "male"]},
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "invalid JSON body"},
                "field": {"type": "string", "example": "gender"},
                "value": {}
            }
        },
        "types.FieldOptions": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "lunch"},
                "from_encoder": {"type": "boolean", "example": true},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.NumericBounds": {
            "type": "object",
            "properties": {
                "default": {"type": "number", "example": 70},
                "field": {"type": "string", "example": "reading score"},
                "max": {"type": "number", "example": 100},
                "min": {"type": "number", "example": 0},
                "step": {"type": "number", "example": 1}
            }
        },
        "types.OptionsResponse": {
            "type": "object",
            "properties": {
                "categorical": {"type": "array", "items": {"$ref": "#/definitions/types.FieldOptions"}},
                "numeric": {"type": "array", "items": {"$ref": "#/definitions/types.NumericBounds"}}
            }
        },
        "types.PredictRequest": {
            "type": "object",
            "required": ["reading score", "writing score"],
            "properties": {
                "gender": {"type": "string", "example": "female"},
                "lunch": {"type": "string", "example": "standard"},
                "parental level of education": {"type": "string", "example": "bachelor's degree"},
                "race/ethnicity": {"type": "string", "example": "group B"},
                "reading score": {"type": "number", "example": 72},
                "test preparation course": {"type": "string", "example": "none"},
                "writing score": {"type": "number", "example": 74}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "cached": {"type": "boolean", "example": false},
                "formatted": {"type": "string", "example": "68.42"},
                "math_score": {"type": "number", "example": 68.41733},
                "prediction_id": {"type": "string", "example": "5b0f3f1e-8d0c-4a53-9f7e-0f1f1c9e1c2a"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "cache_entries": {"type": "integer", "example": 12},
                "encoded_fields": {"type": "array", "items": {"type": "string"}},
                "encoders_path": {"type": "string"},
                "feature_names": {"type": "array", "items": {"type": "string"}},
                "load_error": {"type": "string"},
                "model_kind": {"type": "string", "example": "random_forest"},
                "model_path": {"type": "string"},
                "predictions_total": {"type": "integer", "example": 40},
                "server_time_unix": {"type": "integer", "example": 1700000000},
                "state": {"type": "string", "example": "ready"},
                "uptime_seconds": {"type": "integer", "example": 3600}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "scored API",
	Description:      "HTTP API for math score prediction from student profile and reading/writing scores.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
