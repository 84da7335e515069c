// Package iogenai implements assistant.Generator on the Gemini API.
package iogenai

import (
	"context"

	"github.com/gnames/gnmarine/pkg/assistant"
	"github.com/gnames/gnmarine/pkg/config"
	"google.golang.org/genai"
)

type generator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini generator from the assistant config.
func New(ctx context.Context, cfg config.AssistantConfig) (assistant.Generator, error) {
	if cfg.APIKey == "" {
		return nil, MissingKeyError()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ClientError(err)
	}
	return &generator{client: client, model: cfg.Model}, nil
}

func (g *generator) Generate(ctx context.Context, req assistant.Request) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents(req.Turns), settings(req))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func contents(turns []assistant.Turn) []*genai.Content {
	res := make([]*genai.Content, len(turns))
	for i, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == assistant.Model {
			role = genai.RoleModel
		}
		res[i] = genai.NewContentFromText(t.Text, role)
	}
	return res
}

func settings(req assistant.Request) *genai.GenerateContentConfig {
	res := &genai.GenerateContentConfig{}
	if req.System != "" {
		res.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Shape) > 0 {
		res.ResponseMIMEType = "application/json"
		res.ResponseSchema = schema(req.Shape)
	}
	return res
}

func schema(shape assistant.Shape) *genai.Schema {
	res := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(shape)),
		Required:   make([]string, 0, len(shape)),
	}
	for _, p := range shape {
		typ := genai.TypeString
		if p.Type == assistant.Number {
			typ = genai.TypeNumber
		}
		res.Properties[p.Name] = &genai.Schema{Type: typ, Description: p.Description}
		res.Required = append(res.Required, p.Name)
	}
	return res
}
