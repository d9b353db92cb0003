package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-minter/internal/config"
	"github.com/feral-file/ff-minter/internal/logger"
)

var (
	configFile string
	envPath    string

	cfg *config.MinterConfig
)

// rootCmd is the minter CLI
var rootCmd = &cobra.Command{
	Use:           "minter",
	Short:         "Publish artwork to IPFS and mint it on the collection contract",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.ChdirRepoRoot()

		var err error
		cfg, err = config.LoadMinterConfig(configFile, envPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		return logger.Initialize(logger.Config{
			Debug:           cfg.Debug,
			SentryDSN:       cfg.SentryDSN,
			BreadcrumbLevel: zapcore.InfoLevel,
			Tags: map[string]string{
				"service": "minter",
			},
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Flush(2 * time.Second)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/", "Path to environment files")

	rootCmd.AddCommand(connectCmd, mintCmd, galleryCmd, deployCmd, uploadAssetsCmd, mintAllCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}
