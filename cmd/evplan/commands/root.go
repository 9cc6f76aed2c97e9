package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evplan/internal/config"
	"evplan/internal/datastore"
	"evplan/internal/logging"
	"evplan/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	dataDir string
	cfg     *config.AppConfig

	provider *datastore.Provider
	now      = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "evplan",
	Short: "evplan serves inventory and payment insights for an event marketplace",
	Long: `Aggregates vendor inventory allocations, host events and payment milestones into
dashboard figures, exposed as MCP tools over stdio or rendered as a static HTML report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetLevel(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.LogDir); err != nil {
			return err
		}
		if dataDir != "" {
			cfg.SnapshotDir = dataDir
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("data", cfg.SnapshotDir).
			Msg("evplan starting")

		provider = datastore.NewProvider(datastore.NewStore(), cfg.SnapshotDir)
		return provider.Hydrate(cmd.Context())
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	server := mcp.NewServer(cfg, provider, Version)
	return server.Serve(cmd.Context())
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "snapshot directory holding the JSONL fixtures (default: SNAPSHOT_DIR)")
	rootCmd.AddCommand(serveCmd)
}
