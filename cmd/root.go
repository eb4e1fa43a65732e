package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dsisolutions/shopsched/app"
	"github.com/dsisolutions/shopsched/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "shopsched",
	Short: "Shop floor scheduling service",
	Long: "Imports M2M routing CSV exports, schedules released jobs against\n" +
		"work center capacity and reports utilization and bottlenecks.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configured file, falling back to defaults when
// the default file is absent.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newService() (*app.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
