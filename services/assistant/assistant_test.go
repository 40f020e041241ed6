package assistant

import (
	"context"
	"testing"

	"bossmaids/config"
	"bossmaids/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedReplyRouting(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"How much should I charge for a deep clean?", demoResponses["pricing"]},
		{"What's a good hourly rate?", demoResponses["pricing"]},
		{"How do I get more clients?", demoResponses["marketing"]},
		{"Should I advertise on Instagram?", demoResponses["marketing"]},
		{"How do I respond to this lead?", demoResponses["leads"]},
		{"Hello there", demoResponses["default"]},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, scriptedReply(tc.message), "message: %s", tc.message)
	}
}

func TestChatWithoutGeminiIsScripted(t *testing.T) {
	svc, err := NewAssistantService(config.Config{})
	require.NoError(t, err)
	require.Nil(t, svc.Gemini)

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message: "How should I price my services?",
	})
	require.NoError(t, err)
	assert.True(t, resp.Demo)
	assert.Equal(t, demoResponses["pricing"], resp.Message)
}

func TestQuotePassthrough(t *testing.T) {
	svc, err := NewAssistantService(config.Config{})
	require.NoError(t, err)

	out := svc.Quote(models.QuoteInput{
		Bedrooms:   3,
		Bathrooms:  2,
		SquareFeet: 1500,
		Service:    "regular",
		Frequency:  "weekly",
		City:       "Miami",
		State:      "FL",
	})
	assert.Equal(t, 159.0, out.Total)
}
