package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
	flagQuiet    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "linkedpost",
	Short: "Turn AI newsletters into scheduled LinkedIn posts",
	Long: `linkedpost fetches AI newsletters, scores and cleans their articles,
renders them into LinkedIn posts and publishes them on a schedule.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagDB != "" {
			cfg.Database.Path = flagDB
		}

		level := cfg.Log.Level
		if flagLogLevel != "" {
			level = flagLogLevel
		}
		if err := debuglog.Setup(debuglog.ParseLogLevel(level), cfg.Log.File); err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}

		if !flagQuiet && cmd.Name() != "version" {
			showBanner()
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		debuglog.Close()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the linkedpost version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "linkedpost %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "skip startup banner")
}

// Execute runs the CLI. The version string is set at build time.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func openStore() (*storage.Store, error) {
	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}
