package docs

import "github.com/swaggo/swag"

const authPaths = `
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create a passenger account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "401": {"description": "wrong number or password"},
                    "422": {"description": "Validation error"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in with phone number and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "401": {"description": "wrong number or password"},
                    "422": {"description": "Validation error"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }`

const bookingPaths = `
        "/locations": {
            "get": {"tags": ["Catalog"], "summary": "Pickup and destination choices", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/drivers": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Tricycle drivers, nearest first when a pickup is given",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "query", "name": "pickup"},
                    {"type": "integer", "in": "query", "name": "limit"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown pickup"}, "422": {"description": "Validation error"}}
            }
        },
        "/booking": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Current booking state", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookingResponse"}}}}
        },
        "/booking/route": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Booking"],
                "summary": "Change pickup and/or destination",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RouteRequest"}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}, "422": {"description": "Validation error"}}
            }
        },
        "/booking/driver": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Booking"],
                "summary": "Select a tricycle driver",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.SelectDriverRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown driver"}, "409": {"description": "Not allowed in the current state"}}
            }
        },
        "/booking/book": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Book the selected driver", "responses": {"202": {"description": "Accepted"}, "409": {"description": "Already submitting"}, "422": {"description": "No driver selected"}}}
        },
        "/booking/arrival": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Confirm the tricycle has arrived", "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}}}
        },
        "/booking/cancel": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Ask to cancel the booked trip", "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}}}
        },
        "/booking/cancel/confirm": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Confirm cancellation", "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}}}
        },
        "/booking/cancel/dismiss": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Keep the booking", "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}}}
        },
        "/booking/rating": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Booking"],
                "summary": "Rate the completed trip",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RatingRequest"}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}, "422": {"description": "Validation error"}}
            }
        },
        "/booking/reset": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Start a new booking after a completed trip", "responses": {"200": {"description": "OK"}, "409": {"description": "Not allowed in the current state"}}}
        },
        "/alerts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Alerts"], "summary": "Alerts, most recent first, with the unread count", "responses": {"200": {"description": "OK"}}}
        },
        "/alerts/{alert_id}/read": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Alerts"],
                "summary": "Mark one alert as read",
                "parameters": [{"type": "string", "in": "path", "name": "alert_id", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/alerts/read-all": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Alerts"], "summary": "Mark every alert as read", "responses": {"200": {"description": "OK"}}}
        },
        "/trips": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Trips"], "summary": "Trip history with summary", "responses": {"200": {"description": "OK"}}}
        }`

const definitions = `
        "dto.RegisterUserRequest": {
            "type": "object",
            "properties": {"phone": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {"phone": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "expires_at": {"type": "string"}, "next": {"type": "string"}}
        },
        "dto.RouteRequest": {
            "type": "object",
            "properties": {"pickup": {"type": "string"}, "destination": {"type": "string"}}
        },
        "dto.SelectDriverRequest": {
            "type": "object",
            "properties": {"driver_id": {"type": "string"}}
        },
        "dto.RatingRequest": {
            "type": "object",
            "properties": {"stars": {"type": "integer"}}
        },
        "dto.BookingResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "step": {"type": "integer"},
                "step_label": {"type": "string"},
                "pickup": {"type": "string"},
                "destination": {"type": "string"},
                "submitting": {"type": "boolean"},
                "cancel_pending": {"type": "boolean"},
                "eta_remaining": {"type": "integer"},
                "progress": {"type": "number"},
                "rating": {"type": "integer"}
            }
        }`

func template(paths string) string {
	return `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {` + paths + `
    },
    "definitions": {` + definitions + `
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
}

var (
	AuthInfo = &swag.Spec{
		Version:          "1.0",
		Host:             "localhost:3005",
		BasePath:         "/",
		Title:            "BATODA Auth Service API",
		Description:      "Passenger sign-up and sign-in.",
		InfoInstanceName: "auth",
		SwaggerTemplate:  template(authPaths),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}

	BookingInfo = &swag.Spec{
		Version:          "1.0",
		Host:             "localhost:3000",
		BasePath:         "/",
		Title:            "BATODA Booking Service API",
		Description:      "Tricycle booking flow, alerts and trip history.",
		InfoInstanceName: "booking",
		SwaggerTemplate:  template(bookingPaths),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}

	StandaloneInfo = &swag.Spec{
		Version:          "1.0",
		Host:             "localhost:3000",
		BasePath:         "/",
		Title:            "BATODA API",
		Description:      "Auth and booking on one listener.",
		InfoInstanceName: "standalone",
		SwaggerTemplate:  template(authPaths + "," + bookingPaths),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}
)

func init() {
	for _, spec := range []*swag.Spec{AuthInfo, BookingInfo, StandaloneInfo} {
		swag.Register(spec.InstanceName(), spec)
	}
}
