// Package ai defines the Generator boundary: prompt in, model output out.
// Flows depend only on this interface; the concrete backend lives in genai.go.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Generator es el motor LLM visto como caja negra.
type Generator interface {
	// Generate ejecuta el prompt y retorna el texto crudo de la respuesta.
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateJSON runs the prompt expecting a JSON object reply and decodes it
// into out. Markdown code fences around the JSON are tolerated: models add
// them even when told not to.
func GenerateJSON(ctx context.Context, g Generator, prompt string, out any) error {
	raw, err := g.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	cleaned := stripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("model returned non-JSON output: %w", err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
