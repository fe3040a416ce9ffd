package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/config"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/faq"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/knowledge"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/logging"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/retrieval"
)

var demoQueries = []string{
	"What are your business hours?",
	"How do I contact support?",
	"Is my data safe?",
	"What time do you open?",
	"Can I get my money back?",
}

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	kbPath := flag.String("kb", cfg.Knowledge.Path, "path to the knowledge base file")
	top := flag.Int("top", cfg.Knowledge.ContextTopK, "number of Q/A pairs in context mode")
	scale := flag.Float64("scale", cfg.Knowledge.DistanceScale, "distance at which confidence reaches 0")
	showContext := flag.Bool("context", false, "print the language model context block instead of the best answer")
	demo := flag.Bool("demo", false, "run a fixed set of sample queries")
	verbose := flag.Bool("verbose", false, "enable verbose output for debugging")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 && !*demo {
		fmt.Fprintf(os.Stderr, "Usage: faqrag [options] <query>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level, "text")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Step 1: Load knowledge base
	corpus, err := knowledge.LoadWithLogger(*kbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading knowledge base: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Initialize embedder and build the index
	emb, err := cfg.Embedding.NewEmbedder()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing embedder: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("building index",
		zap.Int("records", corpus.Len()),
		zap.String("model", emb.ModelInfo()))

	searcher, err := retrieval.Build(ctx, corpus, emb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building index: %v\n", err)
		os.Exit(1)
	}

	svc := faq.NewService(searcher, corpus,
		faq.WithDistanceScale(*scale),
		faq.WithContextK(*top),
		faq.WithLogger(logger))

	// Step 3: Run queries
	queries := demoQueries
	if len(args) > 0 {
		queries = []string{strings.Join(args, " ")}
	}

	for i, query := range queries {
		if len(queries) > 1 {
			fmt.Println(strings.Repeat("=", 60))
		}
		fmt.Printf("Query: %s\n", query)
		fmt.Println(strings.Repeat("-", 60))

		if *showContext {
			text, err := svc.GetContext(ctx, query, *top)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(text)
		} else if err := printAnswer(ctx, svc, query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if i < len(queries)-1 {
			fmt.Println()
		}
	}
}

func printAnswer(ctx context.Context, svc *faq.Service, query string) error {
	result, err := svc.GetAnswer(ctx, query)
	if err != nil {
		return err
	}

	if result.MatchedQuestion == nil {
		fmt.Println("Matched: (none)")
	} else {
		fmt.Printf("Matched: %s\n", *result.MatchedQuestion)
	}
	fmt.Printf("Confidence: %.2f%%\n", result.Confidence*100)
	if result.Distance != nil {
		fmt.Printf("Distance: %.4f\n", *result.Distance)
	}
	fmt.Printf("\nAnswer: %s\n", result.Answer)
	return nil
}
