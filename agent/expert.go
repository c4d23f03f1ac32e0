package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Expert is one Gemini chat with a dedicated role. The facilitator routes
// questions to experts through function calls; an expert holding a Library
// can in turn call domain functions before answering.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start opens the underlying chat. An Expert answers nothing before Start.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends the parts to the expert and resolves any function call it makes
// before returning the final answer.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}

	first := resp.Candidates[0].Content.Parts[0]
	if first.FunctionCall == nil {
		return resp.Candidates[0].Content, nil
	}
	if e.Library == nil {
		return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
	}

	// Function failures travel inside the response payload, so the library
	// never errors. Keep asking until the expert settles on an answer.
	fresp := e.Library(ctx, first.FunctionCall)
	return e.Ask(ctx, &genai.Part{FunctionResponse: fresp})
}

// Declaration exposes the expert itself as a callable function, so that a
// facilitator can route a question to it by name.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call answers a question routed to this expert. Failures are reported in
// the response payload, never as a Go error, as the caller is a model.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	d := e.Declaration()

	question, ok := args[d.Parameters.Required[0]].(string)
	if !ok {
		return &genai.FunctionResponse{
			ID:   id,
			Name: d.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("invalid type got %T, expected string", args[d.Parameters.Required[0]]),
			},
		}
	}

	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return &genai.FunctionResponse{
			ID:   id,
			Name: d.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("something went wrong while calling the expert: %v", err),
			},
		}
	}

	text := answer.Parts[0].Text
	log.Printf("Expert %q: \n        %q\n        %q", e.Name, question, text)
	return &genai.FunctionResponse{
		ID:   id,
		Name: d.Name,
		Response: map[string]any{
			"output": text,
		},
	}
}
