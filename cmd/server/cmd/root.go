package cmd

import (
	"fmt"
	"os"

	"clubsphere_backend/internal/config"
	"clubsphere_backend/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "server",
		Short: "ClubSphere membership backend",
		Long: `ClubSphere serves the club membership API: member registration and roles,
club and manager requests, published clubs, checkout and payments, events and
registrations, and admin reporting.`,
		SilenceUsage: true,
		// Serve when no subcommand is given.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}
)

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ensureIndexesCmd)
	rootCmd.AddCommand(tokenCmd)
}

// loadConfig reads the dotenv file and environment and initialises logging.
func loadConfig() (config.Config, error) {
	config.LoadDotEnv(envFile)
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	utils.InitLogger(cfg.LogLevel, !cfg.IsProduction())
	return cfg, nil
}
