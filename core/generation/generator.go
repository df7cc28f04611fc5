// Package generation turns retrieved evidence into a customer-facing answer.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/wandernest/concierge/helper"
	"github.com/wandernest/concierge/model"
)

// NoEvidenceAnswer is returned without calling the language model when
// retrieval produced no usable chunks.
const NoEvidenceAnswer = "I couldn't find relevant information to answer your question. Please try rephrasing or contact our support team."

// CompleteFunc produces a completion for a fully assembled prompt.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// Generator assembles a grounded prompt from retrieval evidence and
// delegates the completion to the configured model backend.
type Generator struct {
	complete CompleteFunc
	timeout  time.Duration
	log      *slog.Logger
}

func NewGenerator(complete CompleteFunc, timeout time.Duration, logger *slog.Logger) *Generator {
	return &Generator{
		complete: complete,
		timeout:  timeout,
		log:      logger,
	}
}

// Generate answers the query from the given evidence. Timeouts are retried
// once with exponential backoff, all other backend errors fail immediately.
func (g *Generator) Generate(ctx context.Context, query string, evidence []*model.RetrievalResult) (string, error) {
	if g.complete == nil {
		return "", helper.NewError("completer validation", errors.New("no completer configured"))
	}
	if len(evidence) == 0 {
		g.log.Info("no evidence found, returning fallback answer")
		return NoEvidenceAnswer, nil
	}

	prompt := BuildPrompt(query, evidence)

	var answer string
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		out, err := g.complete(callCtx, prompt)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				g.log.Warn("generation timed out, retrying", slog.String("query", query))
				return err
			}
			return backoff.Permanent(err)
		}
		answer = out
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), ctx)
	err := backoff.Retry(operation, policy)
	if err != nil {
		return "", helper.NewError("completion", err)
	}

	return answer, nil
}

// BuildPrompt renders the evidence chunks into a knowledge base section with
// source attributions and appends the customer question.
func BuildPrompt(query string, evidence []*model.RetrievalResult) string {
	var context strings.Builder
	for _, result := range evidence {
		source := result.Chunk.SourceID
		if source == "" {
			source = "Unknown"
		}
		context.WriteString(fmt.Sprintf("- %s (Source: %s)\n", result.Chunk.Content, source))
	}

	return fmt.Sprintf(`You are a helpful travel assistant for Wanderlust Travels, an online travel agency.
Use the following information from our knowledge base to answer the customer's question.

Knowledge Base Information:
%s
Customer Question: %q

Please provide a clear, helpful, and accurate answer based on the information above.
If the information is not sufficient, let the customer know and provide general guidance.`, context.String(), query)
}

// DefaultCompleter returns a CompleteFunc backed by the OpenAI chat API.
// It reads OPENAI_API_KEY and optionally OPENAI_MODEL from the environment.
func DefaultCompleter() (CompleteFunc, error) {
	godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, helper.NewError("api key validation", errors.New("OPENAI_API_KEY is not set"))
	}

	modelName := os.Getenv("OPENAI_MODEL")
	if modelName == "" {
		modelName = openai.ChatModelGPT4oMini
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return func(ctx context.Context, prompt string) (string, error) {
		completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(modelName),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
		})
		if err != nil {
			return "", err
		}
		if len(completion.Choices) == 0 {
			return "", errors.New("completion returned no choices")
		}
		return completion.Choices[0].Message.Content, nil
	}, nil
}
