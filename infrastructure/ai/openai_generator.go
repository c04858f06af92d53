package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"alchemy-backend/application/ports"
	"alchemy-backend/domain/element"
	apperrors "alchemy-backend/pkg/errors"

	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

// GeneratorConfig configures the OpenAI models used for generation.
type GeneratorConfig struct {
	TextModel  string
	ImageModel string
}

// OpenAIGenerator implements the DetailsGenerator and IconGenerator ports
// against the OpenAI API.
type OpenAIGenerator struct {
	client openai.Client
	cfg    GeneratorConfig
	logger *zap.Logger
}

// NewOpenAIGenerator creates a new OpenAIGenerator
func NewOpenAIGenerator(client openai.Client, cfg GeneratorConfig, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

const detailsSystemPrompt = `You are the combination engine of an element discovery game.
Given two elements, invent the single element that results from combining them.
Respond with a JSON object holding exactly two string fields, "name" and "description".
The name must be short, a single concept, and must never be the two input names glued together.
The description is one or two sentences describing the element's nature.
Respond with the JSON object only, no surrounding text.`

func detailsPrompt(parentA, parentB *element.Element) string {
	return fmt.Sprintf(
		"Combine these two elements:\n1. %s: %s\n2. %s: %s",
		parentA.Name, parentA.Description,
		parentB.Name, parentB.Description,
	)
}

func iconPrompt(name, description string) string {
	return fmt.Sprintf(
		"A simple stylized game icon representing %q (%s). Flat design, bold shapes, centered on a plain background, no text.",
		name, description,
	)
}

// GenerateDetails asks the text model to invent a name and description for
// the fusion of the two parents. Model output is decoded as a strict
// two-field record and fails closed on anything else.
func (g *OpenAIGenerator) GenerateDetails(ctx context.Context, parentA, parentB *element.Element) (*ports.GeneratedDetails, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.cfg.TextModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(detailsSystemPrompt),
			openai.UserMessage(detailsPrompt(parentA, parentB)),
		},
	})
	if err != nil {
		g.logger.Error("Text generation request failed",
			zap.String("parentA", parentA.Name),
			zap.String("parentB", parentB.Name),
			zap.Error(err),
		)
		return nil, apperrors.NewGenerationFailedError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.NewGenerationFailedError(fmt.Errorf("completion returned no choices"))
	}

	details, err := parseDetails(resp.Choices[0].Message.Content)
	if err != nil {
		g.logger.Warn("Model output failed strict decode",
			zap.String("parentA", parentA.Name),
			zap.String("parentB", parentB.Name),
			zap.Error(err),
		)
		return nil, err
	}

	g.logger.Info("Generated element details",
		zap.String("parentA", parentA.Name),
		zap.String("parentB", parentB.Name),
		zap.String("name", details.Name),
	)

	return details, nil
}

// parseDetails decodes model output into the two-field record. Fenced code
// blocks are tolerated; missing or empty fields fail closed.
func parseDetails(raw string) (*ports.GeneratedDetails, error) {
	trimmed := strings.TrimSpace(raw)
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			trimmed = trimmed[start : end+1]
		}
	}

	var details ports.GeneratedDetails
	if err := json.Unmarshal([]byte(trimmed), &details); err != nil {
		return nil, apperrors.NewMalformedGenerationError("model output is not a JSON object", err)
	}

	details.Name = strings.TrimSpace(details.Name)
	details.Description = strings.TrimSpace(details.Description)
	if details.Name == "" {
		return nil, apperrors.NewMalformedGenerationError("model output is missing the name field", nil)
	}
	if details.Description == "" {
		return nil, apperrors.NewMalformedGenerationError("model output is missing the description field", nil)
	}

	return &details, nil
}

// GenerateIcon asks the image model for a stylized icon and returns the
// decoded image bytes.
func (g *OpenAIGenerator) GenerateIcon(ctx context.Context, name, description string) ([]byte, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         iconPrompt(name, description),
		Model:          openai.ImageModel(g.cfg.ImageModel),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		g.logger.Error("Image generation request failed",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, apperrors.NewImageGenerationError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, apperrors.NewImageGenerationError(fmt.Errorf("image response carried no payload"))
	}

	imageBytes, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, apperrors.NewImageGenerationError(fmt.Errorf("decoding image payload: %w", err))
	}

	g.logger.Info("Generated element icon",
		zap.String("name", name),
		zap.Int("bytes", len(imageBytes)),
	)

	return imageBytes, nil
}
