// Package assistant implementa los flujos de IA del asistente de onboarding:
// elegibilidad por tipo de empleo, coach de pasos y Q&A con contexto web.
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/dropDatabas3/crewmate/internal/ai"
	"github.com/dropDatabas3/crewmate/internal/fetch"
	"github.com/dropDatabas3/crewmate/internal/metrics"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
	"go.uber.org/zap"
)

// ContentFetcher descarga el texto de páginas web para usarlo como contexto.
type ContentFetcher interface {
	FetchAll(ctx context.Context, urls []string) []fetch.Document
}

// Service defines the onboarding assistant flows.
type Service interface {
	IdentifyEmploymentType(ctx context.Context, in EmploymentTypeInput) (*EmploymentTypeOutput, error)
	Coach(ctx context.Context, in CoachInput) (*CoachOutput, error)
	ContextQA(ctx context.Context, in ContextQAInput) (*ContextQAOutput, error)
}

// Deps contains dependencies for the assistant service.
type Deps struct {
	Generator ai.Generator
	Fetcher   ContentFetcher
}

type service struct {
	gen     ai.Generator
	fetcher ContentFetcher
}

// NewService creates a new assistant Service.
func NewService(deps Deps) Service {
	return &service{gen: deps.Generator, fetcher: deps.Fetcher}
}

// Service errors
var (
	ErrUnavailable  = fmt.Errorf("assistant is not configured")
	ErrEmptyInput   = fmt.Errorf("input is required")
	ErrFlowFailed   = fmt.Errorf("assistant flow failed")
	ErrNoURLs       = fmt.Errorf("at least one url is required")
	ErrInvalidReply = fmt.Errorf("assistant returned an invalid reply")
)

// EmploymentTypeInput es la respuesta libre del usuario a la pregunta de tipo
// de empleo.
type EmploymentTypeInput struct {
	UserResponse string `json:"userResponse"`
}

// EmploymentTypeOutput indica si aplica el onboarding estándar.
type EmploymentTypeOutput struct {
	EligibleForOnboarding bool `json:"eligibleForOnboarding"`
}

// CoachInput lleva el ítem actual, las sugerencias previas (para no repetir)
// y contexto de la empresa.
type CoachInput struct {
	OnboardingItem      string   `json:"onboardingItem"`
	PreviousSuggestions []string `json:"previousSuggestions"`
	Context             string   `json:"context"`
}

// CoachOutput es la sugerencia del coach para el ítem actual.
type CoachOutput struct {
	Suggestion string `json:"suggestion"`
}

// ContextQAInput lleva las URLs a descargar y la pregunta del usuario.
type ContextQAInput struct {
	URLs  []string `json:"urls"`
	Query string   `json:"query"`
}

// ContextQAOutput es la respuesta basada en el contenido descargado.
type ContextQAOutput struct {
	Response string `json:"response"`
}

var employmentTypeTmpl = template.Must(template.New("employment_type").Parse(
	`Determine if the user is eligible for standard onboarding based on their employment type.

User Response: {{.UserResponse}}

Consider these employment types eligible for standard onboarding: Full-time, Part-time, Contractor.
If the user indicates they are one of these employment types, set eligibleForOnboarding to true. Otherwise, set it to false.

Reply with a JSON object: {"eligibleForOnboarding": boolean}.
`))

var coachTmpl = template.Must(template.New("coach").Parse(
	`You are an AI coach guiding a new employee through their onboarding process.

Your goal is to provide relevant and helpful tips for the current onboarding item, while avoiding repetition of previous suggestions.

Here's the current onboarding item:
{{.OnboardingItem}}

Here's a list of suggestions you've already made:
{{if .PreviousSuggestions}}{{range .PreviousSuggestions}}- {{.}}
{{end}}{{else}}No previous suggestions.
{{end}}
Here's some contextual information that might be helpful:
{{.Context}}

Based on this information, what is a new, helpful, and relevant suggestion you can provide to the employee?
Make sure to only suggest actions related to the onboarding item and the context provided.

Reply with a JSON object: {"suggestion": string}.
`))

var contextQATmpl = template.Must(template.New("context_qa").Parse(
	`You are an onboarding assistant. You will be provided with content from several web pages, and you will use this content to answer the user's query.

Content:
{{range .Content}}-- URL: {{.URL}} --
{{.Text}}
{{end}}
Query: {{.Query}}

Reply with a JSON object: {"response": string}.
`))

// IdentifyEmploymentType clasifica la respuesta del usuario. Solo Full-time,
// Part-time y Contractor habilitan el onboarding estándar.
func (s *service) IdentifyEmploymentType(ctx context.Context, in EmploymentTypeInput) (*EmploymentTypeOutput, error) {
	log := s.flowLogger(ctx, "IdentifyEmploymentType")
	if s.gen == nil {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(in.UserResponse) == "" {
		return nil, ErrEmptyInput
	}

	prompt, err := render(employmentTypeTmpl, in)
	if err != nil {
		return nil, err
	}

	var out EmploymentTypeOutput
	if err := ai.GenerateJSON(ctx, s.gen, prompt, &out); err != nil {
		log.Error("flow failed", logger.Flow("employment_type"), logger.Err(err))
		metrics.AssistantRequests.WithLabelValues("employment_type", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrFlowFailed, err)
	}

	metrics.AssistantRequests.WithLabelValues("employment_type", "ok").Inc()
	return &out, nil
}

// Coach produce la próxima sugerencia para el ítem de onboarding actual.
func (s *service) Coach(ctx context.Context, in CoachInput) (*CoachOutput, error) {
	log := s.flowLogger(ctx, "Coach")
	if s.gen == nil {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(in.OnboardingItem) == "" {
		return nil, ErrEmptyInput
	}

	prompt, err := render(coachTmpl, in)
	if err != nil {
		return nil, err
	}

	var out CoachOutput
	if err := ai.GenerateJSON(ctx, s.gen, prompt, &out); err != nil {
		log.Error("flow failed", logger.Flow("coach"), logger.Err(err))
		metrics.AssistantRequests.WithLabelValues("coach", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrFlowFailed, err)
	}
	if strings.TrimSpace(out.Suggestion) == "" {
		metrics.AssistantRequests.WithLabelValues("coach", "error").Inc()
		return nil, ErrInvalidReply
	}

	metrics.AssistantRequests.WithLabelValues("coach", "ok").Inc()
	return &out, nil
}

// ContextQA descarga las URLs (las fallas se degradan a un placeholder, nunca
// abortan el flujo) y responde la pregunta usando el contenido como contexto.
func (s *service) ContextQA(ctx context.Context, in ContextQAInput) (*ContextQAOutput, error) {
	log := s.flowLogger(ctx, "ContextQA")
	if s.gen == nil {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(in.Query) == "" {
		return nil, ErrEmptyInput
	}
	if len(in.URLs) == 0 {
		return nil, ErrNoURLs
	}

	docs := s.fetcher.FetchAll(ctx, in.URLs)

	data := struct {
		Content []fetch.Document
		Query   string
	}{Content: docs, Query: in.Query}

	prompt, err := render(contextQATmpl, data)
	if err != nil {
		return nil, err
	}

	var out ContextQAOutput
	if err := ai.GenerateJSON(ctx, s.gen, prompt, &out); err != nil {
		log.Error("flow failed", logger.Flow("context_qa"), logger.Err(err))
		metrics.AssistantRequests.WithLabelValues("context_qa", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrFlowFailed, err)
	}

	metrics.AssistantRequests.WithLabelValues("context_qa", "ok").Inc()
	return &out, nil
}

func (s *service) flowLogger(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("assistant"),
		logger.Op(op),
	)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
