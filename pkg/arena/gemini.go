// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// ProposalSource produces a free-form reply to a prompt. No guarantee
// is made about the reply's format or legality; the Negotiator deals
// with that.
type ProposalSource interface {
	Propose(ctx context.Context, prompt string) (string, error)
}

// GeminiSource proposes moves using Google's Gemini API.
type GeminiSource struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSource(ctx context.Context, apiKey, model string) (*GeminiSource, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	return &GeminiSource{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (source *GeminiSource) Propose(ctx context.Context, prompt string) (string, error) {
	resp, err := source.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", errors.Errorf("gemini: unexpected response part %T", part)
	}

	return string(text), nil
}

func (source *GeminiSource) Close() error {
	return source.client.Close()
}
