// Package main wires together the webprofiler service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/companykit/webprofiler/internal/analyzer"
	"github.com/companykit/webprofiler/internal/api"
	"github.com/companykit/webprofiler/internal/config"
	"github.com/companykit/webprofiler/internal/crawler"
	"github.com/companykit/webprofiler/internal/extract"
	collyfetcher "github.com/companykit/webprofiler/internal/fetcher/colly"
	"github.com/companykit/webprofiler/internal/fetcher/fallback"
	headlessfetcher "github.com/companykit/webprofiler/internal/fetcher/headless"
	"github.com/companykit/webprofiler/internal/headless/detector"
	"github.com/companykit/webprofiler/internal/logging"
	"github.com/companykit/webprofiler/internal/normalize"
	"github.com/companykit/webprofiler/internal/policy/ratelimit"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, logCleanup, err := logging.Install(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := ratelimit.New(ratelimit.Config{
		DefaultRPS:   cfg.Crawler.RateLimitRPS,
		DefaultBurst: cfg.Crawler.RateLimitBurst,
	})

	var fetcher crawler.Fetcher = collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})
	if cfg.Headless.Enabled {
		headless, err := headlessfetcher.NewChromedp(headlessfetcher.Config{
			MaxParallel:       cfg.Headless.MaxParallel,
			UserAgent:         cfg.Crawler.UserAgent,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("headless fetcher init failed", zap.Error(err))
		}
		defer headless.Close()
		fetcher = fallback.New(
			fetcher,
			headless,
			detector.NewHeuristic(cfg.Headless.PromotionThreshold),
			logger.Named("fallback"),
		)
	}

	siteCrawler := crawler.New(fetcher, limiter, crawler.Config{
		Concurrency:       cfg.Crawler.Concurrency,
		BlockedExtensions: cfg.Crawler.BlockedExtensions,
	}, logger.Named("crawler"))

	generator, err := extract.NewLLM(extract.LLMConfig{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		logger.Fatal("llm client init failed", zap.Error(err))
	}
	extractor := extract.New(generator, cfg.LLMCallTimeout(), logger.Named("extract"))

	pipeline := analyzer.New(
		siteCrawler,
		fetcher,
		normalize.NewHTMLText(),
		extractor,
		analyzer.Config{
			MaxDepth:         cfg.Crawler.MaxDepth,
			FetchConcurrency: cfg.Crawler.Concurrency,
			MaxTextChars:     cfg.Crawler.MaxTextChars,
		},
		logger.Named("analyzer"),
	)

	// An analysis spans a crawl plus several model calls; give requests
	// generous headroom over a single fetch timeout.
	requestTimeout := 2*cfg.FetchTimeout() + 8*cfg.LLMCallTimeout()
	apiServer := api.NewServer(pipeline, requestTimeout, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
