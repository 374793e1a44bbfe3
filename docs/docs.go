// Package docs đăng ký tài liệu swagger cho /swagger/*any
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/rooms/available": {
            "get": {
                "tags": ["rooms"],
                "summary": "Tìm phòng trống",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "checkIn", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "checkOut", "in": "query", "required": true},
                    {"type": "string", "name": "roomType", "in": "query"},
                    {"type": "integer", "name": "minCapacity", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "amenities", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/rooms": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rooms"],
                "summary": "Tạo phòng (nhân viên)",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRoomRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["rooms"],
                "summary": "Chi tiết phòng",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["rooms"],
                "summary": "Xóa phòng không còn booking mở",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "ROOM_IN_USE", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}
            }
        },
        "/rooms/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["rooms"],
                "summary": "Đổi trạng thái vận hành của phòng",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetRoomStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/rooms/{id}/calendar": {
            "get": {
                "tags": ["rooms"],
                "summary": "Lịch theo ngày của phòng trong tháng",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Danh sách booking của một khách",
                "parameters": [{"type": "string", "name": "guestId", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Tạo booking pending",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "ROOM_ALREADY_BOOKED", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Chi tiết booking",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/bookings/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Chuyển trạng thái booking (nhân viên)",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "INVALID_TRANSITION", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/bookings/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Hủy booking",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/dto.CancelBookingRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ratings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ratings"],
                "summary": "Đánh giá phòng hoặc nhà hàng",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRatingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "DUPLICATE_RATING", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/ratings/{resourceId}": {
            "get": {
                "tags": ["ratings"],
                "summary": "Điểm trung bình và phân bố sao",
                "parameters": [
                    {"type": "string", "name": "resourceId", "in": "path", "required": true},
                    {"type": "string", "name": "userId", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/restaurants": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ratings"],
                "summary": "Đăng ký nhà hàng",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRestaurantRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Đăng nhập bằng email, trả về access token",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "UNAUTHORIZED", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["users"],
                "summary": "Đăng ký tài khoản khách",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Thông tin user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "mess": {"type": "string"},
                "data": {},
                "pagination": {"$ref": "#/definitions/response.Pagination"}
            }
        },
        "response.Pagination": {
            "type": "object",
            "properties": {"page": {"type": "integer"}, "limit": {"type": "integer"}, "total": {"type": "integer"}}
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "mess": {"type": "string"}, "errorCode": {"type": "string"}}
        },
        "models.ServiceItem": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "price": {"type": "number"}, "quantity": {"type": "integer"}}
        },
        "dto.CreateBookingRequest": {
            "type": "object",
            "required": ["roomId", "checkIn", "checkOut"],
            "properties": {
                "roomId": {"type": "string"},
                "guestId": {"type": "string"},
                "checkIn": {"type": "string", "example": "2025-06-01"},
                "checkOut": {"type": "string", "example": "2025-06-03"},
                "guestCount": {"type": "integer"},
                "specialRequests": {"type": "string"},
                "additionalServices": {"type": "array", "items": {"$ref": "#/definitions/models.ServiceItem"}}
            }
        },
        "dto.TransitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["confirmed", "checked-in", "checked-out", "cancelled", "no-show"]},
                "paidAmount": {"type": "number"},
                "paymentStatus": {"type": "string", "enum": ["pending", "partially-paid", "paid", "failed", "refunded"]},
                "paymentMethod": {"type": "string"},
                "transactionId": {"type": "string"},
                "reason": {"type": "string"},
                "refundAmount": {"type": "number"}
            }
        },
        "dto.CancelBookingRequest": {
            "type": "object",
            "properties": {"reason": {"type": "string"}, "refundAmount": {"type": "number"}}
        },
        "dto.CreateRoomRequest": {
            "type": "object",
            "required": ["roomNumber", "type"],
            "properties": {
                "roomNumber": {"type": "string"},
                "type": {"type": "string"},
                "pricePerNight": {"type": "number"},
                "capacity": {"type": "integer"},
                "amenities": {"type": "array", "items": {"type": "string"}},
                "description": {"type": "string"}
            }
        },
        "dto.SetRoomStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["vacant", "cleaning", "maintenance"]}}
        },
        "dto.CreateRatingRequest": {
            "type": "object",
            "required": ["resourceId"],
            "properties": {"resourceId": {"type": "string"}, "userId": {"type": "string"}, "rating": {"type": "integer", "minimum": 1, "maximum": 5}}
        },
        "dto.CreateRestaurantRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "cuisine": {"type": "string"}}
        },
        "dto.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.CreateUserRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Hotel booking API",
	Description:      "Đặt phòng, vòng đời booking và đánh giá.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
