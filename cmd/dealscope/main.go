package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/dealscope/pkg/affiliate"
	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/decision"
	"github.com/umputun/dealscope/pkg/lists"
	"github.com/umputun/dealscope/pkg/metrics"
	"github.com/umputun/dealscope/pkg/notify"
	"github.com/umputun/dealscope/pkg/repository"
	"github.com/umputun/dealscope/pkg/scheduler"
	"github.com/umputun/dealscope/pkg/scoring"
	"github.com/umputun/dealscope/pkg/source"
	"github.com/umputun/dealscope/pkg/trends"
	"github.com/umputun/dealscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)
	lgr.Printf("[INFO] starting dealscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLog(opts.Debug, cfg.Telegram.Token, cfg.LLM.APIKey, cfg.Affiliate.APIKey, cfg.Server.Password)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:               cfg.Database.DSN,
		MaxOpenConns:      cfg.Database.MaxOpenConns,
		MaxIdleConns:      cfg.Database.MaxIdleConns,
		ConnMaxLifetime:   time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		DefaultAutonomous: cfg.Schedule.Autonomous,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	sources := make([]source.Entry, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		entry, err := source.NewEntry(sc)
		if err != nil {
			return fmt.Errorf("failed to make source %q: %w", sc.Name, err)
		}
		sources = append(sources, entry)
	}

	minter, err := affiliate.New(cfg.Affiliate)
	if err != nil {
		return fmt.Errorf("failed to make affiliate minter: %w", err)
	}

	m := metrics.New()
	params := scheduler.Params{
		Sources:         sources,
		Manual:          source.NewManual(nil),
		Lists:           lists.NewFiles(cfg.Lists.Blacklist, cfg.Lists.HotTerms),
		Seen:            repos.Seen,
		Mode:            repos.Mode,
		Reviews:         repos.Review,
		Minter:          minter,
		Scorer:          scoring.NewScorer(scoring.WithWeights(cfg.Scoring)),
		Limiter:         scoring.NewLimiterFromConfig(cfg.Categories),
		Decider:         decision.NewFromConfig(cfg.Scoring),
		Trends:          makeTrends(cfg.Trends),
		Metrics:         m,
		Interval:        cfg.Schedule.Interval,
		Cooldown:        cfg.Schedule.Cooldown,
		MaxWorkers:      cfg.Schedule.MaxWorkers,
		PublishDelay:    cfg.Schedule.PublishDelay,
		ReportEvery:     cfg.Schedule.ReportEvery,
		Retention:       cfg.Schedule.Retention,
		CleanupInterval: cfg.Schedule.CleanupInterval,
	}

	var bot *notify.Telegram
	if cfg.TelegramEnabled() {
		bot = notify.NewTelegram(notify.TelegramParams{
			APIURL:    cfg.Telegram.APIURL,
			Token:     cfg.Telegram.Token,
			ChannelID: cfg.Telegram.ChannelID,
			AdminID:   cfg.Telegram.AdminID,
			Timeout:   cfg.Telegram.Timeout,
			Headliner: makeHeadliner(cfg.LLM),
		})
		params.Notifier = bot
	} else {
		lgr.Printf("[WARN] telegram is not configured, deals are only logged")
		params.Notifier = notify.Log{}
	}

	sched := scheduler.NewScheduler(params)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:   cfg,
		Commands: sched,
		Seen:     repos.Seen,
		Reviews:  repos.Review,
		Metrics:  m,
		Version:  revision,
		Debug:    opts.Debug,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if bot != nil && cfg.Telegram.Listen && cfg.Telegram.AdminID != 0 {
		listener := notify.NewListener(bot, sched, cfg.Telegram.AdminID, cfg.Telegram.PollTimeout)
		g.Go(func() error {
			if err := listener.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("telegram listener: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeTrends returns the trending terms provider, nil if trends are disabled.
// A feed url is fetched through the cache, otherwise the fixed terms are used.
func makeTrends(cfg config.TrendsConfig) scheduler.TrendProvider {
	if !cfg.Enabled {
		return nil
	}
	if cfg.URL == "" {
		lgr.Printf("[INFO] using %d fixed trending terms", len(cfg.Terms))
		return trends.NewStatic(cfg.Terms, cfg.Category)
	}
	fetcher := &trends.FeedFetcher{URL: cfg.URL, Category: cfg.Category, Client: &http.Client{Timeout: cfg.Timeout}}
	return trends.NewCached(fetcher, cfg.TTL, cfg.CacheFile)
}

func makeHeadliner(cfg config.LLMConfig) notify.Headliner {
	if !cfg.Enabled {
		return notify.Plain{}
	}
	lgr.Printf("[INFO] llm headlines enabled, model %s", cfg.Model)
	return notify.NewCopywriter(cfg)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
