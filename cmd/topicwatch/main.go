package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/topicwatch/pkg/config"
	"github.com/umputun/topicwatch/pkg/content"
	"github.com/umputun/topicwatch/pkg/feed"
	"github.com/umputun/topicwatch/pkg/llm"
	"github.com/umputun/topicwatch/pkg/match"
	"github.com/umputun/topicwatch/pkg/metrics"
	"github.com/umputun/topicwatch/pkg/notify"
	"github.com/umputun/topicwatch/pkg/report"
	"github.com/umputun/topicwatch/pkg/repository"
	"github.com/umputun/topicwatch/pkg/scheduler"
	"github.com/umputun/topicwatch/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"topicwatch.yml" description:"configuration file"`

	Server  struct{} `command:"server" description:"run http api and scheduled cycles (default)"`
	RunOnce struct{} `command:"run-once" description:"run one cycle for every topic and exit"`
	Query   struct {
		Args struct {
			Interest []string `positional-arg-name:"interest" required:"1"`
		} `positional-args:"yes"`
	} `command:"query" description:"print the search plan for an interest"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
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

	command := "server"
	if parser.Active != nil {
		command = parser.Active.Name
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting topicwatch version %s, %s", revision, command)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, command, os.Stdout)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %s failed: %v", command, err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run loads configuration, wires the pipeline and executes the command
func run(ctx context.Context, opts Opts, command string, out io.Writer) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey, cfg.SMTP.Password)

	m := metrics.New()
	judge := llm.NewClient(cfg.LLM, m)

	if command == "query" {
		interest := strings.TrimSpace(strings.Join(opts.Query.Args.Interest, " "))
		if interest == "" {
			return errors.New("interest is required")
		}
		searches, err := judge.GenerateSearches(ctx, interest)
		if err != nil {
			return fmt.Errorf("generate searches: %w", err)
		}
		for _, s := range searches {
			fmt.Fprintln(out, s)
		}
		return nil
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	navigator := content.NewChromeNavigator(content.NavigatorParams{
		ExecPath:        cfg.Content.ChromePath,
		UserAgent:       cfg.Content.UserAgent,
		Headful:         cfg.Content.Headful,
		NavigateTimeout: cfg.Content.NavigateTimeout,
		IdleTimeout:     cfg.Content.IdleTimeout,
	})
	defer navigator.Close()

	hold, err := scheduler.ParseHoldPolicy(cfg.Gate.HoldPolicy)
	if err != nil {
		return err
	}

	var notifier scheduler.Notifier = notify.Log{}
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTP(cfg.SMTP)
	}

	processor := scheduler.NewTopicProcessor(scheduler.TopicProcessorParams{
		Topics:     repos.Topic,
		Candidates: repos.Candidate,
		Accounts:   repos.Account,
		Harvester: feed.NewHarvester(feed.Params{
			SearchURL:    cfg.Feed.SearchURL,
			Limit:        cfg.Feed.Limit,
			Timeout:      cfg.Feed.Timeout,
			UserAgent:    cfg.Feed.UserAgent,
			AllowUpdated: cfg.Feed.AllowUpdated,
		}),
		Judge: judge,
		Resolver: content.NewResolver(navigator, content.NewHTTPExtractor(cfg.Content.ExtractTimeout, cfg.Content.UserAgent),
			cfg.Content.MaxChars, cfg.Content.MinChars),
		Reporter:    report.NewSynthesizer(judge, cfg.Report.Attempts, cfg.Report.MinWords),
		Notifier:    notifier,
		Matcher:     match.New(cfg.Pipeline.MatchCutoff),
		Gate:        scheduler.Gate{Grace: cfg.Gate.CadenceGrace, Hold: hold},
		MaxAccepted: cfg.Pipeline.MaxAccepted,
		Metrics:     m,
	})

	sched, err := scheduler.NewScheduler(repos.Topic, processor, scheduler.Params{
		Cron:           cfg.Schedule.Cron,
		MaxParallel:    cfg.Schedule.MaxParallel,
		DatastorePause: cfg.Schedule.DatastorePause,
	})
	if err != nil {
		return fmt.Errorf("failed to make scheduler: %w", err)
	}

	if command == "run-once" {
		res, err := sched.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "topics: %d, fired: %d, failed: %d, conflicts: %d\n", res.Topics, res.Fired, res.Failed, res.Conflicts)
		return nil
	}

	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, server.NewRepositoryAdapter(repos), judge, processor, m.Handler(), revision, opts.Debug)
	return srv.Run(ctx)
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

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
