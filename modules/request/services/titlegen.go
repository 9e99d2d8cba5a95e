package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/pkg/configuration"
)

// TitleGenerator produces a short display title for a new request. Failures
// are expected (the provider is external); callers fall back to a templated
// title and never abort the creation.
type TitleGenerator interface {
	Generate(ctx context.Context, dto *request.CreateDTO) (string, error)
}

type openAITitleGenerator struct {
	opts configuration.TitleGenOptions
}

func NewTitleGenerator(opts configuration.TitleGenOptions) TitleGenerator {
	return &openAITitleGenerator{opts: opts}
}

const titlePrompt = "Generate a concise title (at most 8 words) for an institutional resource request. " +
	"Reply with the title only, no quotes."

func (g *openAITitleGenerator) Generate(ctx context.Context, dto *request.CreateDTO) (string, error) {
	if g.opts.APIKey == "" {
		return "", fmt.Errorf("title generation disabled: no api key")
	}

	var client openai.Client
	if g.opts.BaseURL != "" {
		client = openai.NewClient(
			option.WithAPIKey(g.opts.APIKey),
			option.WithBaseURL(g.opts.BaseURL),
		)
	} else {
		client = openai.NewClient(
			option.WithAPIKey(g.opts.APIKey),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	response, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(titlePrompt),
			openai.UserMessage(describeRequest(dto)),
		},
		MaxTokens: openai.Int(32),
	})
	if err != nil {
		return "", fmt.Errorf("title generation: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("title generation: empty response")
	}

	title := strings.TrimSpace(strings.Trim(response.Choices[0].Message.Content, `"`))
	if title == "" {
		return "", fmt.Errorf("title generation: blank title")
	}
	return title, nil
}

func describeRequest(dto *request.CreateDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s\nPriority: %s\n", dto.Type, dto.Priority)
	if dto.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", dto.Description)
	}
	switch dto.Type {
	case request.TypeJob:
		fmt.Fprintf(&b, "Job type: %s\nJob description: %s\n", dto.Job.JobType, dto.Job.Description)
	case request.TypeVenue:
		fmt.Fprintf(&b, "Purpose: %s\n", dto.Venue.Purpose)
	case request.TypeTransport:
		fmt.Fprintf(&b, "Destination: %s\nPurpose: %s\n", dto.Transport.Destination, dto.Transport.Purpose)
	case request.TypeReturnable:
		fmt.Fprintf(&b, "Purpose: %s\n", dto.Borrow.Purpose)
	case request.TypeSupply:
		fmt.Fprintf(&b, "Purpose: %s\n", dto.Supply.Purpose)
	}
	return b.String()
}

// FallbackTitle is the templated title used when generation fails or the
// requester supplied none.
func FallbackTitle(dto *request.CreateDTO) string {
	var subject string
	switch dto.Type {
	case request.TypeJob:
		subject = dto.Job.JobType
	case request.TypeVenue:
		subject = "Venue booking"
	case request.TypeTransport:
		subject = dto.Transport.Destination
	case request.TypeReturnable:
		subject = "Equipment loan"
	case request.TypeSupply:
		subject = "Supplies"
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "Resource"
	}
	return fmt.Sprintf("%s request (%s)", subject, strings.ToLower(string(dto.Priority)))
}
