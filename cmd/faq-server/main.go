package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/config"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/faq"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/knowledge"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/logging"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/retrieval"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/server"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/token"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := []server.Option{server.WithRequestTimeout(cfg.Server.RequestTimeout)}
	if cfg.TokensEnabled() {
		issuer, err := token.NewIssuer(token.Config{
			APIKey:    cfg.LiveKit.APIKey,
			APISecret: cfg.LiveKit.APISecret,
			URL:       cfg.LiveKit.URL,
			TTL:       cfg.LiveKit.TokenTTL,
		})
		if err != nil {
			return err
		}
		opts = append(opts, server.WithTokenIssuer(issuer))
		logger.Info("token issuance enabled", zap.String("livekit_url", cfg.LiveKit.URL))
	} else {
		logger.Warn("LiveKit credentials not set, POST /token disabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      server.New(svc, logger, opts...).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildService loads the knowledge base and builds the index once, before
// any request is served.
func buildService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*faq.Service, error) {
	corpus, err := knowledge.LoadWithLogger(cfg.Knowledge.Path, logger)
	if err != nil {
		return nil, err
	}

	emb, err := cfg.Embedding.NewEmbedder()
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	logger.Info("building index",
		zap.Int("records", corpus.Len()),
		zap.String("model", emb.ModelInfo()))
	searcher, err := retrieval.Build(ctx, corpus, emb)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	logger.Info("index ready", zap.Int("dimension", searcher.Index().Dimension))

	return faq.NewService(searcher, corpus,
		faq.WithDistanceScale(cfg.Knowledge.DistanceScale),
		faq.WithContextK(cfg.Knowledge.ContextTopK),
		faq.WithLogger(logger)), nil
}
