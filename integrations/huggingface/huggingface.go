package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/creatorlens/backend/core/config"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/fetcher"
)

type inferenceParameters struct {
	GuidanceScale     float64 `json:"guidance_scale"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

// Client drives the HuggingFace inference endpoint for FLUX.1-dev.
// A 503 means the model is still warming up and is the only status worth
// retrying; every other non-2xx is terminal.
type Client struct {
	cfg     config.HuggingFaceConfig
	fetcher *fetcher.Client
}

func NewClient(cfg config.HuggingFaceConfig, f *fetcher.Client) *Client {
	return &Client{cfg: cfg, fetcher: f}
}

func (c *Client) Name() string {
	return c.cfg.Model
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Generate returns the raw image bytes for an already-enhanced prompt.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			GuidanceScale:     c.cfg.GuidanceScale,
			NumInferenceSteps: c.cfg.InferenceSteps,
			Width:             c.cfg.Width,
			Height:            c.cfg.Height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding inference request: %w", err)
	}

	logrus.Infof("[HF] generating image with %s", c.cfg.Model)

	payload, err := c.fetcher.Do(ctx, fetcher.Request{
		Method: http.MethodPost,
		URL:    c.cfg.ModelURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.cfg.APIKey,
			"Content-Type":  "application/json",
		},
		Body: body,
		RetryableStatus: func(status int) bool {
			return status == http.StatusServiceUnavailable // model loading
		},
	}, fetcher.Policy{
		MaxAttempts: c.cfg.MaxAttempts,
		Timeout:     c.cfg.Timeout,
		BackoffBase: c.cfg.BackoffBase,
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("[HF] image generated, %d bytes", len(payload))
	return payload, nil
}

var _ media.GenerationProvider = (*Client)(nil)
