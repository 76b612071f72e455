package adapter

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one role-tagged turn of a generation request
type Message struct {
	Role Role
	Text string
}

// GenerateRequest carries a system instruction, the ordered conversation
// messages and an optional JSON schema for structured output. Backends
// that support native structured output apply the schema; others fall
// back to instruction-level JSON enforcement.
type GenerateRequest struct {
	System         string
	Messages       []Message
	ResponseSchema *jsonschema.Schema
}

// GenAI is the generative backend contract: text completion over
// role-tagged messages and batch embedding into unit-normalized vectors
// of a fixed dimension.
type GenAI interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
