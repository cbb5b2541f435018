package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"shop-control/backend/internal/apperror"
	"shop-control/backend/internal/features/completion/domain"
	"shop-control/backend/internal/features/completion/infrastructure"
	"shop-control/backend/internal/retry"
)

// CompletionService defines the interface for the completion application service.
type CompletionService interface {
	Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error)
}

// completionService is the implementation of CompletionService.
type completionService struct {
	client infrastructure.CompletionClient
	policy retry.Policy
}

// NewCompletionService creates a new instance of completionService.
func NewCompletionService(client infrastructure.CompletionClient, policy retry.Policy) CompletionService {
	return &completionService{client: client, policy: policy}
}

// Complete fills in missing product specs through the upstream model.
func (s *completionService) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil || req.Task != domain.TaskCompleteProductSpecs {
		return nil, apperror.BadRequest("Unsupported task")
	}

	prompt := BuildPrompt(req.Input)

	if !s.client.Configured() {
		return &domain.CompletionResponse{
			SpecsFilled: []domain.SpecPair{},
			Notes:       domain.MissingCredentialNote,
		}, nil
	}

	var content string
	attempt := 0
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		attempt++
		out, err := s.client.CreateJSONCompletion(ctx, domain.SystemInstruction, prompt)
		if err != nil {
			log.Printf("[WARN] completion attempt %d failed: %v", attempt, err)
			return err
		}
		content = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete product specs: %w", err)
	}

	resp := domain.DecodeContent(content).ToResponse()
	return &resp, nil
}

// BuildPrompt renders the user message for a product-spec completion.
// Missing input keys render as empty values.
func BuildPrompt(input map[string]any) string {
	url := stringField(input, "url")
	title := stringField(input, "title")

	specs := "[]"
	if v, ok := input["specs"]; ok && v != nil {
		if b, err := json.Marshal(v); err == nil {
			specs = string(b)
		}
	}

	var sb strings.Builder
	sb.WriteString("You are a product attribute completion agent for an e-commerce site.\n")
	sb.WriteString("Given partially extracted product info, identify missing key specs and fill them with precise values.\n")
	sb.WriteString("Prefer authoritative sources. If unsure, return null for the value.\n")
	fmt.Fprintf(&sb, "URL: %s\n", url)
	fmt.Fprintf(&sb, "Title: %s\n", title)
	fmt.Fprintf(&sb, "Extracted specs: %s\n", specs)
	sb.WriteString("Return JSON array of {name, value} pairs under key specs_filled and an optional notes string.")
	return sb.String()
}

func stringField(input map[string]any, key string) string {
	v, ok := input[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
