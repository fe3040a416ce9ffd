package faq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// LookupToolName is the function name the model calls.
const LookupToolName = "lookup_company_info"

// ErrUnknownTool is returned by HandleToolCall for calls to other functions.
var ErrUnknownTool = errors.New("unknown tool")

// AgentInstructions is the system prompt for a conversational agent that
// answers only from LookupInfo output.
const AgentInstructions = `You are a helpful company FAQ assistant. Answer general questions about company policies, services and procedures using ONLY the FAQ database.

Rules:
1. You only have general FAQ information. You cannot see customer data, orders, accounts or any personal or transactional data.
2. Always call the ` + LookupToolName + ` tool for any question about company policies or procedures.
3. Answer only with information from the retrieved FAQ data. Do not use general knowledge, do not improvise, do not infer beyond what is written.
4. If the tool returns no relevant information, say: "I don't have that information in my FAQ database. Please contact our support team for help."
5. If asked about personal or account-specific information, explain that you only provide general FAQ information and suggest contacting support.
6. Never ask for sensitive personal information.
7. If a question is unrelated to the company or its services, say: "I can only help with questions related to our company services and policies."`

type lookupArgs struct {
	Query string `json:"query"`
}

// LookupTool describes LookupInfo as an OpenAI function tool.
func LookupTool() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        LookupToolName,
			Description: "Searches the company's FAQ database for information.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"query": {
						Type:        jsonschema.String,
						Description: "The user's question or keywords to search for",
					},
				},
				Required: []string{"query"},
			},
		},
	}
}

// HandleToolCall runs a lookup tool call and returns the tool message to
// append to the conversation.
func (s *Service) HandleToolCall(ctx context.Context, call openai.ToolCall) (openai.ChatCompletionMessage, error) {
	if call.Function.Name != LookupToolName {
		return openai.ChatCompletionMessage{}, fmt.Errorf("%w: %q", ErrUnknownTool, call.Function.Name)
	}

	var args lookupArgs
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("decoding %s arguments: %w", LookupToolName, err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return openai.ChatCompletionMessage{}, fmt.Errorf("%s: query is required", LookupToolName)
	}

	content, err := s.LookupInfo(ctx, args.Query)
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}

	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    content,
		Name:       LookupToolName,
		ToolCallID: call.ID,
	}, nil
}
