package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a minimal chat message used by the turn handlers.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

// Client defines the methods required by the handlers and the retrieval
// engine.  Chat accepts the full message list (system + context + latest
// user message); Embed returns the embedding vector for a single text.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIClient calls the OpenAI API for chat completion and embedding
// responses.  Credentials and model names come from configuration.
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	embedModel string
}

// NewOpenAIClient constructs an OpenAI-backed LLM client.
func NewOpenAIClient(apiKey, chatModel, embedModel string) *OpenAIClient {
	return &OpenAIClient{
		client:     openai.NewClient(apiKey),
		chatModel:  chatModel,
		embedModel: embedModel,
	}
}

// Chat sends the message list to the chat completion API and returns the
// assistant's response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	// Convert to OpenAI message type
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    oaMsgs,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for the given text using the
// configured embedding model.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.client == nil {
		return nil, errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embedModel),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}
