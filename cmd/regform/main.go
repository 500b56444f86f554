// Command regform drives the student registration form from the terminal,
// renders it as HTML, serves it over HTTP, and exports its OpenAPI contract.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/registration"
)

// app carries the global flags and the resources built from them.
type app struct {
	catalogPath string
	verbose     bool

	logger  *zap.Logger
	catalog *catalog.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "regform",
		Short: "University student registration form",
		Long: `regform runs the student registration form.

Fill it in a full-screen terminal UI (tui) or through sequential prompts
(prompt), render it as a static HTML page (render), serve it over HTTP
(serve), or export the OpenAPI contract of the HTTP routes (contract).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "option catalog YAML (embedded default when empty)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newTUICmd(a),
		newPromptCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
		newContractCmd(a),
	)
	return root
}

func (a *app) init() error {
	config := zap.NewProductionConfig()
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if a.catalogPath == "" {
		a.catalog, err = catalog.Default()
	} else {
		a.catalog, err = catalog.LoadFile(a.catalogPath)
	}
	if err != nil {
		return err
	}
	return nil
}

// formOptions are the registration options every subcommand shares.
func (a *app) formOptions() []registration.Option {
	return []registration.Option{
		registration.WithCatalog(a.catalog),
		registration.WithLogger(a.logger),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
