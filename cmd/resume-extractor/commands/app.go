package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/batch"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
	"github.com/joseph-ayodele/resume-extractor/internal/llm"
	"github.com/joseph-ayodele/resume-extractor/internal/llm/providers"
	"github.com/joseph-ayodele/resume-extractor/internal/logger"
	repo "github.com/joseph-ayodele/resume-extractor/internal/repository"
	"github.com/joseph-ayodele/resume-extractor/internal/textextract"
)

// application holds what every subcommand shares once flags and environment are resolved.
type application struct {
	cfg      *common.Config
	logger   *slog.Logger
	text     *textextract.Extractor
	exporter *export.Service
	columns  []entity.Column
	formats  []export.Format
	store    *repo.Store
	closers  []func()
}

var app *application

// setup loads configuration, applies global flags and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd:
		return nil
	}
	cfg := common.LoadConfig()

	if globalFlags.strategy != "" {
		s, ok := constants.CanonicalizeStrategy(globalFlags.strategy)
		if !ok {
			return common.InputError(fmt.Sprintf("unknown strategy %q", globalFlags.strategy), nil)
		}
		cfg.Extractor.Strategy = s
	}
	if globalFlags.provider != "" {
		cfg.SetProvider(globalFlags.provider)
	}
	if globalFlags.model != "" {
		cfg.LLM.Model = globalFlags.model
	}
	if globalFlags.outputDir != "" {
		cfg.Output.Dir = globalFlags.outputDir
	}
	if f := cmd.Flags().Lookup("formats"); f != nil && f.Changed {
		cfg.Output.Formats = splitList(f.Value.String())
	}
	if f := cmd.Flags().Lookup("columns"); f != nil && f.Changed {
		cfg.Output.Columns = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Debug:   globalFlags.debug,
		Quiet:   globalFlags.quiet,
		JSON:    globalFlags.jsonLogs,
		Compact: !globalFlags.jsonLogs && !globalFlags.debug,
	})

	formats, columns, err := outputSettings(cfg.Output)
	if err != nil {
		return err
	}

	app = &application{
		cfg:    cfg,
		logger: log,
		text: textextract.NewExtractor(textextract.Config{
			Pdftotext:         cfg.Text.Pdftotext,
			PdftotextFallback: cfg.Text.PdftotextFallback,
		}, log),
		exporter: export.NewService(log),
		columns:  columns,
		formats:  formats,
	}
	return nil
}

// outputSettings resolves the configured export formats and column set.
func outputSettings(out common.OutputConfig) ([]export.Format, []entity.Column, error) {
	formats, err := export.ParseFormats(out.Formats)
	if err != nil {
		return nil, nil, err
	}
	columns, ok := entity.ParseColumnSet(out.Columns)
	if !ok {
		return nil, nil, common.InputError(fmt.Sprintf("unknown column set %q", out.Columns), nil)
	}
	return formats, columns, nil
}

// openStore connects the optional record database. A configured but unreachable
// database is logged and skipped; extraction does not depend on it.
func (a *application) openStore(ctx context.Context) *repo.Store {
	if a.store != nil || a.cfg.Database.DSN == "" {
		return a.store
	}
	store, err := repo.Open(ctx, repo.Config{
		DSN:             a.cfg.Database.DSN,
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		DialTimeout:     a.cfg.Database.DialTimeout,
	}, a.logger)
	if err != nil {
		a.logger.Warn("record store unavailable, continuing without it", "error", err)
		return nil
	}
	a.store = store
	a.closers = append(a.closers, store.Close)
	return store
}

// generator builds the configured llm provider client.
func (a *application) generator(ctx context.Context) (llm.Generator, error) {
	gen, err := providers.New(ctx, a.cfg.LLM.Provider, llm.ProviderConfig{
		APIKey:         a.cfg.LLM.APIKey,
		BaseURL:        a.cfg.LLM.BaseURL,
		Model:          a.cfg.LLM.Model,
		Temperature:    a.cfg.LLM.Temperature,
		Timeout:        a.cfg.LLM.Timeout,
		ResponseFormat: llm.ParseResponseFormat(a.cfg.LLM.ResponseFormat),
	}, a.logger)
	if err != nil {
		return nil, err
	}
	if c, ok := gen.(io.Closer); ok {
		a.closers = append(a.closers, func() {
			if cerr := c.Close(); cerr != nil {
				a.logger.Error("close llm client", "error", cerr)
			}
		})
	}
	return gen, nil
}

// runner assembles a batch runner for strategy, attached to the record store when one is open.
func (a *application) runner(ctx context.Context, strategy constants.Strategy) (*batch.Runner, error) {
	deps := fields.Deps{
		Regex:  fields.Options{RequirePhoneLabel: a.cfg.Extractor.PhoneLabelRequired},
		Logger: a.logger,
	}
	if strategy == constants.StrategyLLM {
		gen, err := a.generator(ctx)
		if err != nil {
			return nil, err
		}
		deps.Generator = gen
		deps.LLM = fields.LLMOptions{
			Format:   llm.ParseResponseFormat(a.cfg.LLM.ResponseFormat),
			MaxChars: a.cfg.LLM.MaxInputChars,
		}
	}

	fx, err := fields.New(strategy, deps)
	if err != nil {
		return nil, err
	}
	r := batch.NewRunner(a.logger, a.text, fx)
	if store := a.openStore(ctx); store != nil {
		r.WithStore(repo.NewRecordRepository(store, a.logger))
	}
	return r, nil
}

// close releases everything opened during the command, newest first.
func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
