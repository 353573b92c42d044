// Package docs registers the Swagger document served under /swagger.
//
// The registered document only carries the API info. Run go generate to
// replace this file with the full document built from the handler
// annotations.
package docs

//go:generate swag init -g cmd/server/main.go -d ../ -o .

import "github.com/swaggo/swag"

// @tag.name Boards
// @tag.description Board management and board detail reads

// @tag.name Columns
// @tag.description Column management and column ordering

// @tag.name Cards
// @tag.description Card management and card moves

// @tag.name Labels
// @tag.description Board label registry

// @tag.name Health
// @tag.description Liveness

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
    "paths": {}
}`

// SwaggerInfo holds the API info. Clients may modify it before serving.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Baudboard API",
	Description:      "Kanban boards with ordered columns and cards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
