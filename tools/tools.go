//go:build tools

// Pins the versions of the linters used by `make lint`.
package main

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
