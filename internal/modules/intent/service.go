// README: Intent classifiers: the rule-table classifier and the LLM-backed substitute.
package intent

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"foodiespot/internal/types"
)

// Classifier decides the conversational act of one utterance given the dialogue state.
type Classifier interface {
	Classify(ctx context.Context, text string, state types.DialogueState) Intent
}

type RuleClassifier struct {
	rules []Rule
}

func NewRuleClassifier(rules []Rule) *RuleClassifier {
	return &RuleClassifier{rules: rules}
}

// Rules returns the table in evaluation order.
func (c *RuleClassifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c *RuleClassifier) Classify(ctx context.Context, text string, state types.DialogueState) Intent {
	_, i := c.Explain(text, state)
	return i
}

// Explain returns the name of the rule that fired along with its intent.
func (c *RuleClassifier) Explain(text string, state types.DialogueState) (string, Intent) {
	u := Utterance{Text: strings.ToLower(strings.TrimSpace(text)), State: state}
	for _, r := range c.rules {
		if r.applies(u) {
			return r.Name, r.Intent
		}
	}
	return "", GeneralInquiry
}

// Resolver is the remote model contract used by LLMClassifier.
type Resolver interface {
	ResolveIntent(ctx context.Context, message string, state string, allowed []string) (string, error)
}

// LLMClassifier asks a model for the intent and falls back to another classifier
// when the call fails or returns a label outside the closed set.
type LLMClassifier struct {
	resolver Resolver
	fallback Classifier
	logger   *zap.Logger
}

func NewLLMClassifier(resolver Resolver, fallback Classifier, logger *zap.Logger) *LLMClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMClassifier{resolver: resolver, fallback: fallback, logger: logger}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string, state types.DialogueState) Intent {
	allowed := make([]string, len(All))
	for i, in := range All {
		allowed[i] = string(in)
	}
	label, err := c.resolver.ResolveIntent(ctx, text, string(state), allowed)
	if err != nil {
		c.logger.Warn("llm intent failed, using fallback", zap.Error(err))
		return c.fallback.Classify(ctx, text, state)
	}
	parsed, ok := Parse(strings.TrimSpace(strings.ToLower(label)))
	if !ok {
		c.logger.Warn("llm returned unknown intent, using fallback", zap.String("label", label))
		return c.fallback.Classify(ctx, text, state)
	}
	return parsed
}
