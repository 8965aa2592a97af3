// Package compass provides a high-level façade over the guidance
// orchestrator and its services (agents, model providers, sources,
// sessions, logging). Most applications interact with this package by:
//  1. Creating a Compass via New() (optionally overriding the config,
//     completer, or sources)
//  2. Serving HTTP via Handler(), or calling Guide() directly
//
// All defaults are safe for local development: a mock completer, the
// built-in sample job postings, and the embedded course catalog.
package compass

import (
	"context"
	"fmt"
	"net/http"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/careercompass/compass/agent"
	"github.com/careercompass/compass/catalog"
	"github.com/careercompass/compass/config"
	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/guidance"
	"github.com/careercompass/compass/jobs"
	"github.com/careercompass/compass/logging"
	"github.com/careercompass/compass/model"
	"github.com/careercompass/compass/model/anthropic"
	"github.com/careercompass/compass/model/bedrock"
	"github.com/careercompass/compass/model/openai"
	"github.com/careercompass/compass/server"
	"github.com/careercompass/compass/session"
)

// Options configures a Compass instance.
type Options struct {
	// Config supplies service configuration. Nil uses config.Default().
	Config *config.Config

	// Completer overrides the provider selected by the config.
	Completer model.Completer

	// JobSource overrides the job posting source.
	JobSource jobs.Source

	// CatalogSource overrides the course catalog source.
	CatalogSource catalog.Source

	// Sessions overrides the session store.
	Sessions session.Store

	// Logger defaults to a NoOp logger if nil.
	Logger logging.Logger
}

// Compass aggregates the orchestration stack behind a small façade.
type Compass struct {
	cfg       *config.Config
	completer model.Completer
	jobSource jobs.Source
	store     *catalog.Store
	sessions  session.Store
	logger    logging.Logger
	metrics   *server.Metrics
}

// New wires a Compass instance, resolving the completion provider from
// the config unless one is supplied.
func New(ctx context.Context, optFns ...func(o *Options)) (*Compass, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	completer := opts.Completer
	if completer == nil {
		var err error
		completer, err = NewCompleter(ctx, cfg.Model)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Model.RPS > 0 {
		completer = model.NewThrottled(completer, cfg.Model.RPS, 1)
	}

	jobSource := opts.JobSource
	if jobSource == nil {
		if cfg.Jobs.URL != "" {
			jobSource = jobs.NewHTTPSource(cfg.Jobs.URL, func(o *jobs.HTTPSourceOptions) {
				o.Client = &http.Client{Timeout: cfg.Jobs.Timeout}
			})
		} else {
			jobSource = jobs.NewSampleSource()
		}
	}

	catalogSource := opts.CatalogSource
	if catalogSource == nil {
		if cfg.Catalog.URL != "" {
			catalogSource = catalog.NewHTTPSource(cfg.Catalog.URL, nil)
		} else {
			catalogSource = catalog.NewStaticSource()
		}
	}
	store := catalog.NewStore(catalogSource, func(o *catalog.StoreOptions) {
		o.TTL = cfg.Catalog.CacheTTL
	})

	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewInMemoryStore(func(o *session.InMemoryOptions) {
			o.TTL = cfg.Session.TTL
		})
	}

	return &Compass{
		cfg:       cfg,
		completer: completer,
		jobSource: jobSource,
		store:     store,
		sessions:  sessions,
		logger:    logger,
		metrics:   server.NewMetrics(),
	}, nil
}

// NewCompleter resolves a completion provider from model configuration.
func NewCompleter(ctx context.Context, cfg config.ModelConfig) (model.Completer, error) {
	switch cfg.Provider {
	case "bedrock":
		return bedrock.New(ctx, func(o *bedrock.Options) {
			if cfg.ModelID != "" {
				o.ModelID = cfg.ModelID
			}
			if cfg.Region != "" {
				o.Region = cfg.Region
			}
			if cfg.MaxTokens > 0 {
				o.MaxTokens = cfg.MaxTokens
			}
			o.Temperature = cfg.Temperature
		})
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			if cfg.ModelID != "" {
				o.Model = anthropicsdk.Model(cfg.ModelID)
			}
			if cfg.MaxTokens > 0 {
				o.MaxTokens = int64(cfg.MaxTokens)
			}
			o.Temperature = cfg.Temperature
			o.APIKey = cfg.APIKey
		}), nil
	case "openai":
		return openai.New(func(o *openai.Options) {
			if cfg.ModelID != "" {
				o.Model = cfg.ModelID
			}
			if cfg.MaxTokens > 0 {
				o.MaxCompletionTokens = int64(cfg.MaxTokens)
			}
			o.Temperature = cfg.Temperature
		}), nil
	case "mock", "":
		return model.NewMockCompleter(), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

// Guide processes one query through the full agent roster. A fresh
// call-budget wrapper is applied per run so one request cannot exhaust
// the provider quota.
func (c *Compass) Guide(ctx context.Context, q core.Query) core.UnifiedResponse {
	completer := c.completer
	if c.cfg.Model.MaxCallsPerRun > 0 {
		completer = model.NewCallLimiter(completer, c.cfg.Model.MaxCallsPerRun)
	}

	orch := guidance.New(c.roster(completer), func(o *guidance.Options) {
		o.OverallTimeout = c.cfg.Agents.OverallTimeout
		if c.cfg.Agents.Narrative {
			o.Completer = completer
		}
		o.Logger = c.logger
	})
	return orch.Process(ctx, q)
}

// Process makes Compass satisfy server.Guide.
func (c *Compass) Process(ctx context.Context, q core.Query) core.UnifiedResponse {
	return c.Guide(ctx, q)
}

// Handler returns the HTTP handler serving the guidance API.
func (c *Compass) Handler() http.Handler {
	srv := server.New(c, func(o *server.Options) {
		o.Logger = c.logger
		o.Metrics = c.metrics
		o.Sessions = c.sessions
	})
	return srv.Handler()
}

// Sessions exposes the session store.
func (c *Compass) Sessions() session.Store { return c.sessions }

func (c *Compass) roster(completer model.Completer) []agent.Agent {
	agentOpts := func(o *agent.Options) {
		o.Timeout = c.cfg.Agents.Timeout
		o.Logger = c.logger
	}
	return []agent.Agent{
		agent.NewJobMarket(c.jobSource, completer, agentOpts),
		agent.NewCourseCatalog(c.store, agentOpts),
		agent.NewCareerMatching(c.jobSource, c.store, agentOpts),
		agent.NewProjectAdvisor(c.jobSource, c.store, completer, agentOpts),
	}
}
