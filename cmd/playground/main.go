// Command playground runs the kernel demonstrations against a configured
// chat model, collection store and Todoist account.
//
// Usage:
//
//	playground [-config appsettings.toml] [-transcript out.html] <scenario>
//	playground -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kataras/golog"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/smallnest/kernelplay/config"
	"github.com/smallnest/kernelplay/llms/gpt"
	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/scenario"
	"github.com/smallnest/kernelplay/seed"
	"github.com/smallnest/kernelplay/store/factory"
	"github.com/smallnest/kernelplay/todoist"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file (TOML, or JSON when it ends in .json)")
	transcript := flag.String("transcript", "", "also write the session to this HTML file")
	list := flag.Bool("list", false, "list the scenarios and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <scenario>\n\nflags:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		printScenarios(flag.CommandLine.Output())
	}
	flag.Parse()

	if *list || flag.NArg() == 0 {
		printScenarios(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, *configPath, flag.Arg(0), *transcript)
	switch {
	case err == nil:
	case errors.Is(err, scenario.ErrUnknownScenario):
		fmt.Fprintln(os.Stderr, err)
		printScenarios(os.Stderr)
		stop()
		os.Exit(2)
	default:
		log.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

func printScenarios(w io.Writer) {
	fmt.Fprintln(w, "scenarios:")
	for _, s := range scenario.All() {
		fmt.Fprintf(w, "  %-28s %s\n", s.Name, s.Description)
	}
}

func run(ctx context.Context, configPath, name, transcriptPath string) error {
	if _, ok := scenario.Lookup(name); !ok {
		return fmt.Errorf("%w: %s", scenario.ErrUnknownScenario, name)
	}

	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	log.SetDefaultLogger(logger)
	handler := log.NewCallbackHandler(logger)

	model, err := newModel(cfg.OpenAI, handler)
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	s, closer, err := factory.New(ctx, cfg.Store.Options())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closer.Close()

	if _, err := seed.Seed(ctx, s, seed.WithLogger(logger)); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}

	out := newTerminalOutput(os.Stdout)
	var tr *Transcript
	if transcriptPath != "" {
		tr = NewTranscript(out, name)
		out = tr
	}

	in := newLinerReader()
	defer in.Close()

	td, err := todoist.New(
		todoist.WithAPIKey(cfg.Todoist.APIKey),
		todoist.WithBaseURL(cfg.Todoist.BaseURL),
		todoist.WithTimeout(cfg.Todoist.Timeout()),
	)
	if err != nil {
		return fmt.Errorf("create todoist client: %w", err)
	}

	env := &scenario.Env{
		Model:     model,
		Store:     s,
		Todoist:   td,
		Input:     in,
		Output:    out,
		Logger:    logger,
		Callbacks: handler,
	}

	runErr := scenario.Run(ctx, name, env)
	if tr != nil {
		if err := tr.WriteFile(transcriptPath); err != nil {
			return errors.Join(runErr, err)
		}
		logger.Info("transcript written to %s", transcriptPath)
	}
	return runErr
}

func newLogger(level string) (*log.GologLogger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewGologLogger(golog.New())
	logger.SetLevel(lvl)
	return logger, nil
}

func newModel(cfg config.OpenAIConfig, handler callbacks.Handler) (llms.Model, error) {
	switch cfg.Connector {
	case config.ConnectorLangchaingo:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithCallback(handler),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(opts...)
	default:
		return gpt.New(
			gpt.WithAPIKey(cfg.APIKey),
			gpt.WithModel(cfg.Model),
			gpt.WithBaseURL(cfg.BaseURL),
			gpt.WithCallbacks(handler),
		)
	}
}
