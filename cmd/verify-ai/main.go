// verify-ai sends a fixed sales sample to the configured AI service and
// prints the answer. Use it to check AI_API_KEY, AI_BASE_URL and AI_MODEL.
//
// Usage: go run ./cmd/verify-ai
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !cfg.AIEnabled() {
		log.Fatal("AI_API_KEY not set")
	}

	points := []ai.SalePoint{
		{Date: "2024-04-12", Total: decimal.RequireFromString("669.86"), ItemCount: 2},
		{Date: "2024-05-03", Total: decimal.RequireFromString("502.68"), ItemCount: 2},
		{Date: "2024-05-21", Total: decimal.RequireFromString("67.97"), ItemCount: 2},
	}
	prompt, err := ai.BuildPrompt(points)
	if err != nil {
		log.Fatalf("prompt: %v", err)
	}

	gen := ai.NewOpenAIGenerator(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AITimeout)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.AITimeout)
	defer cancel()

	fmt.Printf("MODEL: %s\n", cfg.AIModel)
	start := time.Now()
	text, err := gen.Generate(ctx, ai.GenerateRequest{Model: cfg.AIModel, Prompt: prompt})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n--- RESPONSE (%s) ---\n", time.Since(start).Round(time.Millisecond))
	fmt.Println(text)
}
