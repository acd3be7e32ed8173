package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"foodiespot/internal/ai"
	"foodiespot/internal/modules/catalog"
	"foodiespot/internal/modules/extract"
	"foodiespot/internal/modules/intent"
	"foodiespot/internal/types"
)

func main() {
	_ = godotenv.Load()

	useGemini := flag.Bool("gemini", false, "also ask Gemini (needs GEMINI_API_KEY)")
	state := flag.String("state", string(types.StateInitial), "dialogue state to classify in")
	flag.Parse()

	userMessage := strings.Join(flag.Args(), " ")
	if userMessage == "" {
		userMessage = "I would like to book a table for 4 tomorrow at 7pm at Sunset Bistro."
	}
	fmt.Printf("User: %s\n", userMessage)

	cat := catalog.Default()
	rules := intent.NewRuleClassifier(intent.DefaultRules(cat.Names()))
	rule, in := rules.Explain(userMessage, types.DialogueState(*state))
	fmt.Printf("Rule intent: %s (rule %q)\n", in, rule)

	slots := extract.New(cat.Names()).Extract(userMessage, extract.ModeFresh)
	for _, f := range slots.Present() {
		fmt.Printf("  %s: %s\n", f, slots.Value(f))
	}

	if !*useGemini {
		return
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	llm := intent.NewLLMClassifier(provider, rules, nil)
	fmt.Printf("Gemini intent: %s\n", llm.Classify(ctx, userMessage, types.DialogueState(*state)))

	result, err := provider.ParseRequest(ctx, userMessage)
	if err != nil {
		log.Fatalf("Error parsing request: %v", err)
	}
	p := result.Parameters
	if p.RestaurantName != nil {
		fmt.Printf("  restaurant: %s\n", *p.RestaurantName)
	}
	if p.Date != nil {
		fmt.Printf("  date: %s\n", *p.Date)
	}
	if p.Time != nil {
		fmt.Printf("  time: %s\n", *p.Time)
	}
	if p.PartySize != nil {
		fmt.Printf("  party size: %d\n", *p.PartySize)
	}
}
