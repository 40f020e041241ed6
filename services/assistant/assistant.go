// Package assistant is the AI chat feature: Gemini-backed when an API key is
// configured, scripted keyword-routed replies otherwise.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"bossmaids/config"
	"bossmaids/models"
	"bossmaids/services/quote"
)

// Scripted demo replies, routed by keyword. The assistant persona advises
// cleaning-business owners on pricing, marketing and lead handling.
var demoResponses = map[string]string{
	"pricing": "Based on your area (Miami, FL) and a typical 3 bed / 2 bath home, " +
		"I recommend charging $150 for a Deep Clean. Factor in: premium location (+20%), " +
		"standard home size, and a weekly-frequency discount (-15%). A final price of $150 is competitive.",
	"marketing": "To win more clients in your area: 1) Optimize your Google Business profile, " +
		"2) Post before/after photos on Instagram, 3) Partner with local realtors, " +
		"4) Offer a first-clean discount, 5) Ask every happy client for a Google review.",
	"leads": "To answer that lead: \"Hi [name]! Thanks for reaching out. I've been cleaning homes " +
		"in this area for years with great reviews. Can I stop by for a free estimate? " +
		"When works best for you?\" Reply fast: leads convert best within 5 minutes.",
	"default": "Hi! I'm your cleaning-business assistant. I can help with pricing, marketing, " +
		"client communication and cleaning technique. What do you need? (Demo mode: scripted replies.)",
}

// AssistantService is the chat and price-calculator surface.
type AssistantService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	// Quote runs the deterministic price calculator and returns the full
	// breakdown for the assistant's pricing card.
	Quote(in models.QuoteInput) models.QuoteBreakdown
}

// DefaultAssistantService implements AssistantService.
type DefaultAssistantService struct {
	Cfg    config.Config
	Gemini *GeminiClient // nil when unconfigured
}

// NewAssistantService wires the Gemini client only when an API key exists.
func NewAssistantService(cfg config.Config) (*DefaultAssistantService, error) {
	svc := &DefaultAssistantService{Cfg: cfg}
	if cfg.HasGemini() {
		client, err := NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		svc.Gemini = client
	}
	return svc, nil
}

const systemPrompt = "You are an assistant for owners of residential cleaning businesses. " +
	"Answer briefly and practically about pricing, scheduling, marketing and client communication."

func (s *DefaultAssistantService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if s.Gemini == nil {
		return &models.ChatResponse{Message: scriptedReply(req.Message), Demo: true}, nil
	}
	reply, err := s.Gemini.GenerateContent(ctx, systemPrompt+"\n\nUser: "+req.Message)
	if err != nil {
		return nil, fmt.Errorf("assistant completion failed: %w", err)
	}
	return &models.ChatResponse{Message: reply}, nil
}

func (s *DefaultAssistantService) Quote(in models.QuoteInput) models.QuoteBreakdown {
	return quote.Calculate(in)
}

// scriptedReply picks a canned answer by keyword, mirroring the demo chat's
// routing table.
func scriptedReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "price") || strings.Contains(lower, "charge") || strings.Contains(lower, "rate"):
		return demoResponses["pricing"]
	case strings.Contains(lower, "marketing") || strings.Contains(lower, "client") || strings.Contains(lower, "advertis"):
		return demoResponses["marketing"]
	case strings.Contains(lower, "lead") || strings.Contains(lower, "respond") || strings.Contains(lower, "reply"):
		return demoResponses["leads"]
	default:
		return demoResponses["default"]
	}
}
