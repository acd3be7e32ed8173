package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
type LLMProvider interface {
	// ResolveIntent picks exactly one label from allowed for the message, given the
	// dialogue state the conversation is in.
	ResolveIntent(ctx context.Context, message string, state string, allowed []string) (string, error)

	// ParseRequest extracts the booking intent and any reservation details the
	// message carries. Missing details are left nil.
	ParseRequest(ctx context.Context, message string) (*IntentResult, error)
}
