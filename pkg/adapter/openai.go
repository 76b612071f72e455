package adapter

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/t-okano/brieflet/pkg/model"
)

// OpenAIClient implements GenAI on the OpenAI API. The embedding model is
// requested at a reduced dimensionality so both providers produce vectors
// of the same width.
type OpenAIClient struct {
	client          *openai.Client
	generativeModel string
	embeddingModel  openai.EmbeddingModel
	dimension       int
}

type OpenAIOption func(*OpenAIClient)

func WithOpenAIModel(m string) OpenAIOption {
	return func(o *OpenAIClient) {
		o.generativeModel = m
	}
}

func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	o := &OpenAIClient{
		client:          openai.NewClient(apiKey),
		generativeModel: openai.GPT4o,
		embeddingModel:  openai.SmallEmbedding3,
		dimension:       384,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *OpenAIClient) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Text,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    o.generativeModel,
		Messages: messages,
	}
	if req.ResponseSchema != nil {
		// No schema-level enforcement here; the prompt carries the shape
		// and the synthesis layer validates
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var resp openai.ChatCompletionResponse
	err := retryWithBackoff(ctx, isOpenAITransient, func() error {
		var callErr error
		resp, callErr = o.client.CreateChatCompletion(ctx, chatReq)
		return classifyOpenAIError(callErr)
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", goerr.New("empty response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp openai.EmbeddingResponse
	err := retryWithBackoff(ctx, isOpenAITransient, func() error {
		var callErr error
		resp, callErr = o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model:      o.embeddingModel,
			Input:      texts,
			Dimensions: o.dimension,
		})
		return classifyOpenAIError(callErr)
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("want", len(texts)), goerr.V("got", len(resp.Data)))
	}

	vecs := make([][]float32, len(texts))
	for _, d := range resp.Data {
		// Truncated embeddings are not unit length
		vecs[d.Index] = l2Normalize(d.Embedding)
	}
	return vecs, nil
}

func classifyOpenAIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && (apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403) {
		return goerr.Wrap(model.ErrBackendFatal, apiErr.Message, goerr.V("code", apiErr.HTTPStatusCode))
	}
	return err
}

func isOpenAITransient(err error) bool {
	if errors.Is(err, model.ErrBackendFatal) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	return false
}
