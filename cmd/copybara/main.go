package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edbaunton/copybara/internal/version"
)

const (
	defaultConfigFile = "copybara.yaml"
	defaultWorkdir    = "~/copybara"
)

var rootCmd = &cobra.Command{
	Use:     "copybara",
	Short:   "Source synchronization and migration tool",
	Version: version.Detailed(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigFile, "copybara config file")
	rootCmd.PersistentFlags().StringP("workdir", "w", "", "working directory (overrides the config file)")
}

func main() {
	// .env is optional, real env wins
	_ = godotenv.Load()

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command) error {
	viper.BindPFlag("config", cmd.Flags().Lookup("config"))
	viper.BindPFlag("workdir", cmd.Flags().Lookup("workdir"))

	viper.SetEnvPrefix("COPYBARA")
	viper.AutomaticEnv()

	return nil
}
