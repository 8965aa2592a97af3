// Package bedrock provides a Completer backed by the Amazon Bedrock runtime
// InvokeModel API. It speaks both the Titan text and the Anthropic Claude
// request formats, chosen from the configured model id.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/careercompass/compass/model"
)

// Options configures the Bedrock adapter.
type Options struct {
	ModelID     string
	Region      string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Completer wraps the Bedrock runtime client behind model.Completer.
type Completer struct {
	client invoker
	opts   Options
}

// invoker is the slice of the Bedrock runtime client the adapter uses;
// narrowed to an interface so tests can stub the AWS call.
type invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// New creates a Bedrock completer resolving AWS credentials from the default
// chain (env, shared config, instance role).
func New(ctx context.Context, optFns ...func(o *Options)) (*Completer, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Completer{client: bedrockruntime.NewFromConfig(cfg), opts: opts}, nil
}

// NewFromClient creates a completer from an existing runtime client.
func NewFromClient(client *bedrockruntime.Client, optFns ...func(o *Options)) *Completer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Completer{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		ModelID:     "amazon.titan-text-express-v1",
		Region:      "us-east-1",
		MaxTokens:   4000,
		Temperature: 0.7,
		TopP:        0.9,
	}
}

// titanRequest is the Amazon Titan text generation body.
type titanRequest struct {
	InputText            string      `json:"inputText"`
	TextGenerationConfig titanConfig `json:"textGenerationConfig"`
}

type titanConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

type titanResponse struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
}

// claudeRequest is the legacy Anthropic text-completion body accepted by
// Bedrock-hosted Claude models.
type claudeRequest struct {
	Prompt            string  `json:"prompt"`
	MaxTokensToSample int     `json:"max_tokens_to_sample"`
	Temperature       float64 `json:"temperature"`
}

type claudeResponse struct {
	Completion string `json:"completion"`
}

// Complete implements model.Completer via one InvokeModel round trip.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.buildBody(prompt)
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.opts.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke %s: %w", c.opts.ModelID, err)
	}

	return c.parseBody(out.Body)
}

func (c *Completer) buildBody(prompt string) ([]byte, error) {
	if strings.Contains(c.opts.ModelID, "anthropic.claude") {
		return json.Marshal(claudeRequest{
			Prompt:            fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", prompt),
			MaxTokensToSample: c.opts.MaxTokens,
			Temperature:       c.opts.Temperature,
		})
	}
	// Titan is the default body format.
	return json.Marshal(titanRequest{
		InputText: prompt,
		TextGenerationConfig: titanConfig{
			MaxTokenCount: c.opts.MaxTokens,
			Temperature:   c.opts.Temperature,
			TopP:          c.opts.TopP,
		},
	})
}

func (c *Completer) parseBody(body []byte) (string, error) {
	if strings.Contains(c.opts.ModelID, "anthropic.claude") {
		var resp claudeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("decode claude response: %w", err)
		}
		if resp.Completion == "" {
			return "", fmt.Errorf("claude returned no completion")
		}
		return resp.Completion, nil
	}

	var resp titanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode titan response: %w", err)
	}
	if len(resp.Results) == 0 || resp.Results[0].OutputText == "" {
		return "", fmt.Errorf("titan returned no output text")
	}
	return resp.Results[0].OutputText, nil
}

// Info implements model.Completer.
func (c *Completer) Info() model.Info {
	return model.Info{Name: c.opts.ModelID, Provider: "bedrock"}
}
