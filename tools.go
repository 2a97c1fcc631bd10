//go:build tools

package tools

// Pin code generation tools so `go mod tidy` keeps them.
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
