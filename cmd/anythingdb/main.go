// Command anythingdb is an interactive manager for the tables of one SQLite file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/mesabjorn/anything-db/internal/config"
	"github.com/mesabjorn/anything-db/internal/console"
	"github.com/mesabjorn/anything-db/internal/engine"
	"github.com/mesabjorn/anything-db/internal/logging"
	"github.com/mesabjorn/anything-db/internal/repl"
	"github.com/mesabjorn/anything-db/internal/storage"
)

// CLI defines the command-line interface for anythingdb.
type CLI struct {
	File        string `arg:"" optional:"" name:"file" help:"SQLite database file (created when missing)" type:"path"`
	LogLevel    string `name:"log-level" default:"warn" env:"ANYTHINGDB_LOG_LEVEL" help:"Console log level (debug, info, warn, error)"`
	SeqURL      string `name:"seq-url" env:"ANYTHINGDB_SEQ_URL" help:"Also ship logs to this Seq server"`
	PreviewRows int    `name:"preview-rows" default:"10" help:"Rows shown when reading or listing a table"`
	DriverInfo  bool   `name:"driver-info" help:"Print the compiled-in SQLite driver and exit"`
}

// Run starts an interactive session
func (c *CLI) Run() error {
	if c.DriverInfo {
		printDriverInfo(os.Stdout)
		return nil
	}

	cfg := config.Config{
		DBPath:      c.File,
		LogLevel:    c.LogLevel,
		SeqURL:      c.SeqURL,
		PreviewRows: c.PreviewRows,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closeFn := logging.SetupLogger(logging.Options{Level: level, SeqURL: cfg.SeqURL})
	defer closeFn()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return session(ctx, cfg, logger)
}

func session(ctx context.Context, cfg config.Config, logger *slog.Logger) (err error) {
	db, err := storage.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", cfg.DBPath, cerr))
		}
	}()

	prompter, err := console.NewLinePrompter(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer prompter.Close()

	logger.Info("session started", "path", cfg.DBPath, "driver", storage.GetInfo().DriverName)

	reporter := console.NewReporter(os.Stdout, logger)
	eng := engine.New(db, prompter, reporter, os.Stdout, engine.Options{
		PreviewRows: cfg.PreviewRows,
		Logger:      logger,
	})
	return repl.Start(ctx, eng, prompter, os.Stdout)
}

func printDriverInfo(w io.Writer) {
	info := storage.GetInfo()
	fmt.Fprintf(w, "driver:  %s\n", info.DriverName)
	fmt.Fprintf(w, "type:    %s\n", info.DriverType)
	fmt.Fprintf(w, "package: %s\n", info.Package)
	fmt.Fprintf(w, "cgo:     %t\n", info.IsCGO)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("anythingdb"),
		kong.Description("Interactive table manager for SQLite files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := cli.Run()
	ctx.FatalIfErrorf(err)
}
