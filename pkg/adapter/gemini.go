package adapter

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"google.golang.org/genai"
)

// GeminiClient implements GenAI on the Gemini API (Vertex AI backend)
type GeminiClient struct {
	client          *genai.Client
	generativeModel string
	embeddingModel  string
	dimension       int32
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(m string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = m
	}
}

func WithEmbeddingModel(m string) GeminiOption {
	return func(g *GeminiClient) {
		g.embeddingModel = m
	}
}

func NewGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-2.5-flash",
		embeddingModel:  "gemini-embedding-001",
		dimension:       384,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, "")
	}
	if req.ResponseSchema != nil {
		schema, err := convertJSONSchemaToGenai(req.ResponseSchema)
		if err != nil {
			return "", err
		}
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}

	var resp *genai.GenerateContentResponse
	err := retryWithBackoff(ctx, isGeminiTransient, func() error {
		var callErr error
		resp, callErr = g.client.Models.GenerateContent(ctx, g.generativeModel, contents, config)
		return classifyGeminiError(callErr)
	})
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", goerr.New("empty response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

func (g *GeminiClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	dim := g.dimension
	var resp *genai.EmbedContentResponse
	err := retryWithBackoff(ctx, isGeminiTransient, func() error {
		var callErr error
		resp, callErr = g.client.Models.EmbedContent(ctx, g.embeddingModel, contents, &genai.EmbedContentConfig{
			OutputDimensionality: &dim,
		})
		return classifyGeminiError(callErr)
	})
	if err != nil {
		return nil, err
	}

	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("want", len(texts)))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		// Reduced-dimensionality embeddings come back unnormalized
		vecs[i] = l2Normalize(emb.Values)
	}
	return vecs, nil
}

// classifyGeminiError wraps auth/quota failures as fatal so the retry
// loop surfaces them immediately
func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
		return goerr.Wrap(model.ErrBackendFatal, apiErr.Message, goerr.V("code", apiErr.Code))
	}
	return err
}

func isGeminiTransient(err error) bool {
	if errors.Is(err, model.ErrBackendFatal) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return false
}

func l2Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x * inv
	}
	return out
}
