// Package docs registers the Swagger spec served at /swagger/*.
//
// Regenerate with: swag init -g cmd/pocketpastor/main.go
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
        "/chapters/{bibleId}/{chapterId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chapters"],
                "summary": "Segmented and decorated chapter",
                "parameters": [
                    {"type": "string", "description": "Bible id", "name": "bibleId", "in": "path", "required": true},
                    {"type": "string", "description": "Chapter id", "name": "chapterId", "in": "path", "required": true},
                    {"type": "string", "description": "Target verse, list or range", "name": "verse", "in": "query"},
                    {"type": "string", "description": "Search terms to decorate in the target verses", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/highlights": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["highlights"],
                "summary": "Highlight one verse",
                "parameters": [{"description": "Verse", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/highlight.VerseRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["highlights"],
                "summary": "Remove one verse highlight",
                "parameters": [{"description": "Verse", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/highlight.VerseRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/highlights/toggle": {
            "post": {
                "description": "If any verse is highlighted, all are un-highlighted; otherwise all are highlighted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["highlights"],
                "summary": "Toggle highlight for a set of verses",
                "parameters": [{"description": "Verses", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/highlight.ToggleRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/highlights/{bibleId}/{chapterId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["highlights"],
                "summary": "List highlighted verses of a chapter",
                "parameters": [
                    {"type": "string", "description": "Bible id", "name": "bibleId", "in": "path", "required": true},
                    {"type": "string", "description": "Chapter id", "name": "chapterId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/clusters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "List all favorite clusters of the user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Save verses as one favorite cluster",
                "parameters": [{"description": "Cluster", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cluster.CreateClusterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/clusters/order": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Reorder favorite clusters",
                "parameters": [{"description": "Order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cluster.UpdateOrderRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/clusters/toggle": {
            "post": {
                "description": "If any verse is already favorited, all are unfavorited; otherwise one cluster is created.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Toggle favorite for a set of verses",
                "parameters": [{"description": "Verses", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cluster.ToggleFavoriteRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/clusters/verses": {
            "delete": {
                "description": "Clusters left without verses are deleted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Remove verses from their clusters",
                "parameters": [{"description": "Verses", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cluster.RemoveVersesRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/clusters/{bibleId}/{chapterId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "List favorite clusters of a chapter",
                "parameters": [
                    {"type": "string", "description": "Bible id", "name": "bibleId", "in": "path", "required": true},
                    {"type": "string", "description": "Chapter id", "name": "chapterId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/clusters/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Delete a favorite cluster",
                "parameters": [{"type": "string", "description": "Cluster id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        },
        "/reader/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reader"],
                "summary": "Open a chapter in an interactive reader session",
                "parameters": [{"description": "Chapter", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/reader.OpenRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/reader/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reader"],
                "summary": "Current render of a reader session",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/reader/sessions/{id}/search-highlights/{verse}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["reader"],
                "summary": "Remove the transient search decoration of a verse",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Verse number", "name": "verse", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/reader/sessions/{id}/select-text": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reader"],
                "summary": "Start a free-text selection",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true},
                    {"description": "Range", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/reader.SelectTextRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/reader/sessions/{id}/tap": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reader"],
                "summary": "Toggle a verse in the multi-select set",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true},
                    {"description": "Tap", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/reader.TapRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/reader/sessions/{id}/{action}": {
            "post": {
                "description": "action is one of cancel, highlight, favorite, ask, copy. The selection is cleared afterwards.",
                "produces": ["application/json"],
                "tags": ["reader"],
                "summary": "Dispatch an action bar intent",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Intent", "name": "action", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}}}
            }
        },
        "/chat/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Drain prompts handed over from the reader",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        },
        "highlight.VerseRequest": {
            "type": "object",
            "properties": {
                "bible_id": {"type": "string"},
                "chapter_id": {"type": "string"},
                "verse_number": {"type": "string"}
            }
        },
        "highlight.ToggleRequest": {
            "type": "object",
            "properties": {
                "bible_id": {"type": "string"},
                "chapter_id": {"type": "string"},
                "verse_numbers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "cluster.NewVerse": {
            "type": "object",
            "properties": {
                "verse_number": {"type": "string"},
                "verse_text": {"type": "string"},
                "verse_reference": {"type": "string"}
            }
        },
        "cluster.CreateClusterRequest": {
            "type": "object",
            "properties": {
                "bible_id": {"type": "string"},
                "chapter_id": {"type": "string"},
                "reference": {"type": "string"},
                "cluster_name": {"type": "string"},
                "verses": {"type": "array", "items": {"$ref": "#/definitions/cluster.NewVerse"}}
            }
        },
        "cluster.RemoveVersesRequest": {
            "type": "object",
            "properties": {
                "bible_id": {"type": "string"},
                "chapter_id": {"type": "string"},
                "verse_numbers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "cluster.ToggleFavoriteRequest": {
            "type": "object",
            "properties": {
                "bible_id": {"type": "string"},
                "chapter_id": {"type": "string"},
                "chapter_reference": {"type": "string"},
                "verses": {"type": "array", "items": {"$ref": "#/definitions/cluster.NewVerse"}}
            }
        },
        "cluster.OrderItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sort_order": {"type": "integer"}
            }
        },
        "cluster.UpdateOrderRequest": {
            "type": "object",
            "properties": {
                "order": {"type": "array", "items": {"$ref": "#/definitions/cluster.OrderItem"}}
            }
        },
        "selection.Rect": {
            "type": "object",
            "properties": {
                "top": {"type": "number"},
                "left": {"type": "number"},
                "width": {"type": "number"},
                "height": {"type": "number"}
            }
        },
        "selection.Range": {
            "type": "object",
            "properties": {
                "start_verse": {"type": "string"},
                "start_offset": {"type": "integer"},
                "end_verse": {"type": "string"},
                "end_offset": {"type": "integer"},
                "text": {"type": "string"}
            }
        },
        "reader.OpenRequest": {
            "type": "object",
            "properties": {
                "bible_id": {"type": "string"},
                "chapter_id": {"type": "string"},
                "verse": {"type": "string"},
                "q": {"type": "string"},
                "viewport": {"type": "object"},
                "bar": {"type": "object"}
            }
        },
        "reader.TapRequest": {
            "type": "object",
            "properties": {
                "verse_number": {"type": "string"},
                "rect": {"$ref": "#/definitions/selection.Rect"}
            }
        },
        "reader.SelectTextRequest": {
            "type": "object",
            "properties": {
                "range": {"$ref": "#/definitions/selection.Range"},
                "rect": {"$ref": "#/definitions/selection.Rect"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/pocket-pastor/v1",
	Schemes:          []string{},
	Title:            "Pocket Pastor Reader API",
	Description:      "Verse selection, highlight and favorite-cluster engine of the Pocket Pastor Bible reader.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
