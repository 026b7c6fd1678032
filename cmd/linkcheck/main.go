// Command linkcheck classifies, health checks or extracts the URLs given as
// arguments or on stdin and prints one JSON result per line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/teedgg/linkintel"
)

func main() {
	mode := flag.String("mode", "classify", "classify, health, extract or analyze")
	aiURL := flag.String("ai-url", os.Getenv("AI_URL"), "Product identification service base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-request HTTP timeout")
	full := flag.Bool("full", false, "Run every extraction stage including AI")
	concurrency := flag.Int("concurrency", 3, "URLs health checked at once")
	verbose := flag.Bool("v", false, "Log debug output to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	urls, err := readURLs(flag.Args(), os.Stdin)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		os.Exit(1)
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: linkcheck [-mode classify|health|extract|analyze] url... (or URLs on stdin)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := linkintel.DefaultConfig()
	config.HTTPTimeout = *timeout
	config.AIBaseURL = *aiURL
	config.Logger = logger
	client := linkintel.New(config)

	out := json.NewEncoder(os.Stdout)
	emit := func(v any) {
		if err := out.Encode(v); err != nil {
			logger.Error("failed to write result", "error", err)
			os.Exit(1)
		}
	}

	switch *mode {
	case "classify":
		results, _ := client.Classifier().ClassifyAll(urls)
		for _, r := range results {
			emit(r)
		}
	case "health":
		results := client.BatchCheckURLHealth(ctx, urls, linkintel.BatchOptions{Concurrency: *concurrency})
		for _, r := range results {
			emit(r)
		}
	case "extract":
		for _, u := range urls {
			if *full {
				emit(client.FullExtractProduct(ctx, u))
			} else {
				emit(client.QuickExtractProduct(ctx, u, nil))
			}
		}
	case "analyze":
		opts := linkintel.DefaultAnalyzeOptions()
		opts.SkipAI = *aiURL == ""
		for _, r := range client.AnalyzeURLs(ctx, urls, opts) {
			emit(r)
		}
	default:
		logger.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
}

// readURLs returns the URLs named in args, or those found on stdin when
// there are no arguments
func readURLs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return linkintel.ParseURLsFromInput(strings.Join(args, "\n")), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return linkintel.ParseURLsFromInput(string(data)), nil
}
