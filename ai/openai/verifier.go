// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/policyrank/ai"
	"github.com/poiesic/policyrank/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Verifier implements ai.Verifier using OpenAI-compatible chat APIs.
type Verifier struct {
	client      llms.Model
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// judgment is an internal type used for JSON unmarshaling.
// It matches the array elements the prompt requests from the model.
type judgment struct {
	Index      int     `json:"index"`
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	IsOriginal bool    `json:"is_original"`
	Status     string  `json:"status"`
	Tag        string  `json:"tag"`
}

// newVerifier is an internal constructor that returns the concrete type.
func newVerifier(config *ai.Config) (*Verifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		client:      client,
		temperature: config.Temperature,
		timeout:     config.Timeout,
		logger:      slog.Default().With("component", "openai-verifier"),
	}, nil
}

// NewVerifier creates a verifier using the provided configuration.
//
// Returns ai.Verifier interface to enforce abstraction.
func NewVerifier(config *ai.Config) (ai.Verifier, error) {
	return newVerifier(config)
}

// VerifyBatch judges all items against the query in a single chat call.
// The call is bounded by the configured timeout. Any transport or parse
// failure is returned as an error; callers keep their neutral defaults.
func (v *Verifier) VerifyBatch(ctx context.Context, query string, items []ai.Item) ([]ai.Judgment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildVerifyPrompt(query, items)),
			},
		},
	}

	response, err := v.client.GenerateContent(ctx, content, llms.WithTemperature(v.temperature))
	if err != nil {
		return nil, fmt.Errorf("verification call: %w", err)
	}
	if len(response.Choices) < 1 {
		return nil, ErrEmptyResponse
	}

	return v.parse(response.Choices[0].Content)
}

// parse extracts judgments from the model response, tolerating prose and
// code fences around the JSON array and skipping malformed entries.
func (v *Verifier) parse(text string) ([]ai.Judgment, error) {
	fragment, ok := extractJSONArray(stripCodeFences(text))
	if !ok {
		v.logger.Warn("no JSON array in verifier response", "response", ai.Excerpt(text))
		return nil, ErrMalformedResponse
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	judgments := make([]ai.Judgment, 0, len(raw))
	for _, entry := range raw {
		var j judgment
		if err := json.Unmarshal(entry, &j); err != nil {
			v.logger.Debug("skipping malformed judgment entry", "err", err)
			continue
		}
		if j.Index <= 0 {
			continue
		}

		judgments = append(judgments, ai.Judgment{
			Index:      j.Index,
			Score:      clamp01(j.Score),
			Label:      core.ParseVerifierLabel(j.Label),
			IsOriginal: j.IsOriginal,
			Status:     j.Status,
			Tag:        j.Tag,
		})
	}

	v.logger.Debug("parsed verifier judgments", "total", len(raw), "usable", len(judgments))
	return judgments, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
