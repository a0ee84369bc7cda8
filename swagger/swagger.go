// Package swagger serves the API reference UI and the OpenAPI document it
// renders.
package swagger

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

const specFile = "openapi.yaml"

//go:embed swagger-ui/*
var content embed.FS

// Handler serves index.html and openapi.yaml from the embedded swagger-ui
// directory. It expects the mount prefix to be stripped already.
func Handler() (http.Handler, error) {
	ui, err := fs.Sub(content, "swagger-ui")
	if err != nil {
		return nil, fmt.Errorf("swagger: %w", err)
	}

	if _, err := fs.Stat(ui, specFile); err != nil {
		return nil, fmt.Errorf("swagger: %s is not embedded: %w", specFile, err)
	}

	files := http.FileServer(http.FS(ui))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+specFile {
			w.Header().Set("Content-Type", "application/yaml")
		}

		files.ServeHTTP(w, r)
	}), nil
}
