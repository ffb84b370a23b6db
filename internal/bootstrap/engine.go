package bootstrap

import (
	"context"
	"strings"

	"resume-analysis/internal/ai"
	"resume-analysis/internal/analyses"
	"resume-analysis/internal/analyses/dictionary"
	"resume-analysis/internal/llm"
	openai "resume-analysis/internal/llm/openai"
	"resume-analysis/internal/shared/cache"
	"resume-analysis/internal/shared/config"
	"resume-analysis/internal/shared/telemetry"
)

// EngineDeps is the analysis engine plus what it holds open.
type EngineDeps struct {
	Engine *analyses.Engine
	AI     *ai.Service
	Cache  *cache.Tiered
}

// Close releases the cache connection.
func (d EngineDeps) Close() error {
	if d.Cache == nil {
		return nil
	}
	return d.Cache.Close()
}

// BuildEngine loads the dictionary and, when a provider is configured,
// installs the AI capabilities behind a rate limiter and cache.
func BuildEngine(ctx context.Context, cfg config.Config) (EngineDeps, error) {
	dict := dictionary.Default()
	if path := strings.TrimSpace(cfg.DictionaryFile); path != "" {
		loaded, err := dictionary.LoadFile(path)
		if err != nil {
			return EngineDeps{}, err
		}
		dict = loaded
		telemetry.Info("dictionary.loaded", map[string]any{"path": path})
	}

	var deps EngineDeps
	var insights analyses.Insights
	if cfg.AIEnabled() {
		client, err := openai.NewClient(openai.Config{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
			Timeout: cfg.LLMTimeout,
			Title:   "Resume Analysis",
		})
		if err != nil {
			return EngineDeps{}, err
		}
		deps.Cache = cache.New(ctx, cache.Options{RedisURL: cfg.RedisURL, TTL: cfg.CacheTTL})
		deps.AI = ai.NewService(
			llm.NewRateLimited(client, cfg.LLMRequestsPerMin, cfg.LLMBurst),
			ai.WithCache(deps.Cache),
		)
		insights = deps.AI
	} else {
		telemetry.Info("ai.disabled", map[string]any{"provider": cfg.LLMProvider})
	}

	engine, err := analyses.NewEngine(dict, insights)
	if err != nil {
		_ = deps.Close()
		return EngineDeps{}, err
	}
	deps.Engine = engine
	return deps, nil
}
