package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobmatch-engine/internal/config"
)

const app = "jobmatch-engine"

var rootCmd = &cobra.Command{
	Use:           "engine",
	Short:         "engine matches a résumé against job boards and serves the local UI API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	if err := viper.BindEnv("data-dir", config.EnvDataDir); err != nil {
		log.Fatalf("binding %s environment variable: %v", config.EnvDataDir, err)
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is config.yml in the data dir)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for config, run history and lock files")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	for _, name := range []string{"config", "data-dir", "debug", "json"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			log.Fatalf("binding --%s: %v", name, err)
		}
	}
}
