package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dropDatabas3/crewmate/internal/fetch"
)

type fakeGen struct {
	reply     string
	err       error
	gotPrompt string
}

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeFetcher struct {
	docs []fetch.Document
}

func (f *fakeFetcher) FetchAll(context.Context, []string) []fetch.Document {
	return f.docs
}

func TestIdentifyEmploymentType(t *testing.T) {
	gen := &fakeGen{reply: `{"eligibleForOnboarding": true}`}
	s := NewService(Deps{Generator: gen})

	out, err := s.IdentifyEmploymentType(context.Background(), EmploymentTypeInput{UserResponse: "I'm a full-time employee"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !out.EligibleForOnboarding {
		t.Fatalf("expected eligible")
	}

	// el prompt lleva la respuesta del usuario y los tipos elegibles
	if !strings.Contains(gen.gotPrompt, "I'm a full-time employee") {
		t.Fatalf("prompt missing user response: %q", gen.gotPrompt)
	}
	if !strings.Contains(gen.gotPrompt, "Full-time, Part-time, Contractor") {
		t.Fatalf("prompt missing eligible types: %q", gen.gotPrompt)
	}
}

func TestIdentifyEmploymentType_EmptyInput(t *testing.T) {
	s := NewService(Deps{Generator: &fakeGen{reply: "{}"}})
	if _, err := s.IdentifyEmploymentType(context.Background(), EmploymentTypeInput{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestCoach_IncludesPreviousSuggestions(t *testing.T) {
	gen := &fakeGen{reply: `{"suggestion": "set up your dev environment"}`}
	s := NewService(Deps{Generator: gen})

	out, err := s.Coach(context.Background(), CoachInput{
		OnboardingItem:      "Meet your team",
		PreviousSuggestions: []string{"say hi in #general", "book a 1:1 with your manager"},
		Context:             "Team handbook: we do standups at 10am.",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.Suggestion != "set up your dev environment" {
		t.Fatalf("suggestion = %q", out.Suggestion)
	}

	for _, want := range []string{"Meet your team", "say hi in #general", "book a 1:1 with your manager", "standups at 10am"} {
		if !strings.Contains(gen.gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gen.gotPrompt)
		}
	}
}

func TestCoach_NoPreviousSuggestions(t *testing.T) {
	gen := &fakeGen{reply: `{"suggestion": "s"}`}
	s := NewService(Deps{Generator: gen})

	if _, err := s.Coach(context.Background(), CoachInput{OnboardingItem: "X", Context: "ctx"}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(gen.gotPrompt, "No previous suggestions.") {
		t.Fatalf("prompt missing empty marker:\n%s", gen.gotPrompt)
	}
}

func TestCoach_EmptySuggestionRejected(t *testing.T) {
	s := NewService(Deps{Generator: &fakeGen{reply: `{"suggestion": "  "}`}})
	if _, err := s.Coach(context.Background(), CoachInput{OnboardingItem: "X"}); !errors.Is(err, ErrInvalidReply) {
		t.Fatalf("err = %v, want ErrInvalidReply", err)
	}
}

func TestContextQA_InterpolatesFetchedContent(t *testing.T) {
	gen := &fakeGen{reply: `{"response": "Vacations are 25 days."}`}
	fetcher := &fakeFetcher{docs: []fetch.Document{
		{URL: "https://intranet/pto", Text: "PTO policy: 25 days."},
		{URL: "https://intranet/down", Text: "Error fetching content from https://intranet/down."},
	}}
	s := NewService(Deps{Generator: gen, Fetcher: fetcher})

	out, err := s.ContextQA(context.Background(), ContextQAInput{
		URLs:  []string{"https://intranet/pto", "https://intranet/down"},
		Query: "How many vacation days do I get?",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.Response != "Vacations are 25 days." {
		t.Fatalf("response = %q", out.Response)
	}

	for _, want := range []string{
		"-- URL: https://intranet/pto --",
		"PTO policy: 25 days.",
		"Error fetching content from https://intranet/down.",
		"How many vacation days do I get?",
	} {
		if !strings.Contains(gen.gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gen.gotPrompt)
		}
	}
}

func TestContextQA_RequiresURLs(t *testing.T) {
	s := NewService(Deps{Generator: &fakeGen{reply: "{}"}, Fetcher: &fakeFetcher{}})
	if _, err := s.ContextQA(context.Background(), ContextQAInput{Query: "q"}); !errors.Is(err, ErrNoURLs) {
		t.Fatalf("err = %v, want ErrNoURLs", err)
	}
}

func TestFlows_UnavailableWithoutGenerator(t *testing.T) {
	s := NewService(Deps{})

	if _, err := s.IdentifyEmploymentType(context.Background(), EmploymentTypeInput{UserResponse: "x"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("employment type err = %v", err)
	}
	if _, err := s.Coach(context.Background(), CoachInput{OnboardingItem: "x"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("coach err = %v", err)
	}
	if _, err := s.ContextQA(context.Background(), ContextQAInput{URLs: []string{"u"}, Query: "q"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("context qa err = %v", err)
	}
}
