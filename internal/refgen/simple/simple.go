// Package simple issues booking reference codes.
package simple

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Ref returns a short uppercase reference like "BR-3F2A9C1D".
func (g *Generator) Ref(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("new uuid: %w", err)
	}

	raw := strings.ReplaceAll(id.String(), "-", "")

	return "BR-" + strings.ToUpper(raw[:8]), nil
}
