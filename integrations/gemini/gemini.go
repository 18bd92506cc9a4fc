package gemini

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/creatorlens/backend/core/config"
	"github.com/creatorlens/backend/domains/media"
)

// Client is the Gemini-backed generation fallback, used when no
// HuggingFace credential is configured.
type Client struct {
	cfg config.GeminiConfig
}

func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Name() string {
	return c.cfg.ImageModel
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Generate asks the Gemini image model for one image and returns its raw
// bytes from the inline data part.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	result, err := client.Models.GenerateContent(ctx, c.cfg.ImageModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			logrus.Infof("[GEMINI] image generated, %d bytes", len(part.InlineData.Data))
			return part.InlineData.Data, nil
		}
	}

	return nil, fmt.Errorf("no image data returned from gemini")
}

var _ media.GenerationProvider = (*Client)(nil)
