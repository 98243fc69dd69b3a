// Package docs holds the OpenAPI document served at /swagger/*. Keep it in
// step with the swag annotations on the handlers.
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
        "/balances": {
            "get": {
                "description": "Net balance with everyone the acting user shares expenses with",
                "produces": ["application/json"],
                "tags": ["balances"],
                "summary": "Get all balances",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.OverviewResponse"}}}]}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/balances/{userId}": {
            "get": {
                "description": "Net balance with one user and a message such as \"You owe Bob $15.75\"",
                "produces": ["application/json"],
                "tags": ["balances"],
                "summary": "Get balance with a user",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Other user ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.BalanceResponse"}}}]}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/balances/{userId}/settle": {
            "post": {
                "description": "Settle every pending share between the acting user and another user, in both directions",
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Settle up with a user",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Other user ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.SettleUpResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/expenses": {
            "post": {
                "description": "Create an expense with shares computed by the EQUAL, PERCENTAGE or UNEQUAL policy",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Create a new expense",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "Expense creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ledger.ExpenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.ExpenseResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/expenses/preview": {
            "post": {
                "description": "Compute shares for an expense form without saving it. Shares that do not reconcile are reported with valid=false.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Preview a split",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "Expense being edited", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ledger.ExpenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.PreviewResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/expenses/{id}": {
            "get": {
                "description": "Get an expense with all its shares",
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Get expense by ID",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Expense ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.ExpenseResponse"}}}]}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            },
            "put": {
                "description": "Recompute an expense from a new request. Every share is replaced and starts unsettled.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Edit an expense",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Expense ID", "name": "id", "in": "path", "required": true},
                    {"description": "Expense edit request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ledger.ExpenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.ExpenseResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            },
            "delete": {
                "description": "Delete an expense (payer only, and only while no one has settled a share)",
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Expense ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/expenses/{id}/settle": {
            "post": {
                "description": "Payer marks every share of the expense as settled",
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Settle an expense",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Expense ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.ExpenseResponse"}}}]}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/expenses/{id}/shares/{userId}/settle": {
            "post": {
                "description": "Payer or share owner marks a single share as settled",
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Settle one share",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Expense ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Participant whose share is settled", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.ExpenseResponse"}}}]}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/groups": {
            "post": {
                "description": "Create a new group and add the creator as admin",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Create a new group",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "Group creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/group.CreateGroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/group.GroupResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/groups/{groupId}": {
            "get": {
                "description": "Get a group with all its members",
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Get group by ID",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Group ID", "name": "groupId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/group.GroupResponse"}}}]}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/groups/{groupId}/members": {
            "post": {
                "description": "Add a user to a group. Only admins can add members.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Add member to group",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Group ID", "name": "groupId", "in": "path", "required": true},
                    {"description": "Member to add", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/group.AddMemberRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/group.GroupResponse"}}}]}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/groups/{groupId}/members/{userId}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Remove member from group",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Group ID", "name": "groupId", "in": "path", "required": true},
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/groups/{groupId}/balances": {
            "get": {
                "description": "The acting user's balance with each member of a group",
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Get group balances",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Group ID", "name": "groupId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ledger.GroupBalanceResponse"}}}]}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/groups/{groupId}/expenses": {
            "get": {
                "description": "Get a paginated list of expenses for a group",
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "List expenses by group",
                "parameters": [
                    {"type": "string", "description": "Acting user ID", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Group ID", "name": "groupId", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Items per page", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/ledger.ExpenseResponse"}}}}]}}
                }
            }
        },
        "/users": {
            "post": {
                "description": "Create a new user with username and email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a new user",
                "parameters": [
                    {"description": "User creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/user.UserResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "description": "Get a single user by their ID",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/response.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/user.UserResponse"}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "group.AddMemberRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["ADMIN", "MEMBER"]},
                "user_id": {"type": "string"}
            }
        },
        "group.CreateGroupRequest": {
            "type": "object",
            "properties": {
                "members": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string", "example": "Lisbon trip"}
            }
        },
        "group.GroupResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "created_by": {"type": "string"},
                "id": {"type": "string"},
                "members": {"type": "array", "items": {"$ref": "#/definitions/group.MemberResponse"}},
                "name": {"type": "string"}
            }
        },
        "group.MemberResponse": {
            "type": "object",
            "properties": {
                "joined_at": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "ledger.BalanceResponse": {
            "type": "object",
            "properties": {
                "amount": {"description": "Positive = they owe you, Negative = you owe them", "type": "string", "example": "-15.75"},
                "currency": {"type": "string"},
                "display": {"type": "string", "example": "-$15.75"},
                "message": {"type": "string", "example": "You owe Bob $15.75"},
                "user_id": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "ledger.ExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "100.00"},
                "category": {"type": "string"},
                "currency": {"type": "string", "example": "USD"},
                "date": {"type": "string", "example": "2026-02-14"},
                "description": {"type": "string"},
                "group_id": {"type": "string"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/ledger.ParticipantRequest"}},
                "payer_id": {"description": "defaults to the acting user", "type": "string"},
                "split_type": {"description": "EQUAL, PERCENTAGE or UNEQUAL", "type": "string", "example": "EQUAL"}
            }
        },
        "ledger.ExpenseResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "100.00"},
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "currency": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "group_id": {"type": "string"},
                "id": {"type": "string"},
                "payer_id": {"type": "string"},
                "settled": {"type": "boolean"},
                "shares": {"type": "array", "items": {"$ref": "#/definitions/ledger.ShareResponse"}},
                "split_type": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "ledger.GroupBalanceResponse": {
            "type": "object",
            "properties": {
                "balances": {"type": "array", "items": {"$ref": "#/definitions/ledger.BalanceResponse"}},
                "currency": {"type": "string"},
                "display": {"type": "string"},
                "group_id": {"type": "string"},
                "net": {"type": "string"}
            }
        },
        "ledger.OverviewResponse": {
            "type": "object",
            "properties": {
                "balances": {"type": "array", "items": {"$ref": "#/definitions/ledger.BalanceResponse"}},
                "currency": {"type": "string"},
                "display": {"type": "string"},
                "net": {"type": "string"},
                "owed": {"type": "string"},
                "owing": {"type": "string"}
            }
        },
        "ledger.ParticipantRequest": {
            "type": "object",
            "properties": {
                "amount": {"description": "For UNEQUAL split", "type": "string"},
                "percentage": {"description": "For PERCENTAGE split", "type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "ledger.PreviewResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "shares": {"type": "array", "items": {"$ref": "#/definitions/ledger.ShareResponse"}},
                "valid": {"type": "boolean"}
            }
        },
        "ledger.SettleUpResponse": {
            "type": "object",
            "properties": {
                "settled": {"description": "balance that was cleared", "allOf": [{"$ref": "#/definitions/ledger.BalanceResponse"}]},
                "settled_expenses": {"type": "integer"}
            }
        },
        "ledger.ShareResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "33.34"},
                "id": {"type": "string"},
                "percentage": {"type": "string", "example": "33.34"},
                "settled": {"type": "boolean"},
                "settled_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "response.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/response.APIError"},
                "meta": {"$ref": "#/definitions/response.Meta"},
                "success": {"type": "boolean"}
            }
        },
        "response.Meta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "user.CreateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "bob@example.com"},
                "username": {"type": "string", "example": "bob"}
            }
        },
        "user.UserResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Splitledger API",
	Description:      "Expense splitting and balance netting between friends and groups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
