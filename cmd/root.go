package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/pkg/log"
)

// settings resolves the persistent flags, overridable by ASSETGEN_* variables.
var settings = viper.New()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "assetgen",
	Short: "Package game assets into generated C++ sources and archives",
	Long: `assetgen scans directories of ROMs, audio, fonts, images and string tables,
derives C++ identifiers from their file names, and emits sources that either
embed the bytes or reference a runtime-loadable archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultPath, "project file")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error (prefix with json: for JSON output)")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	for _, name := range []string{"config", "log-level", "log-file"} {
		_ = settings.BindPFlag(name, flags.Lookup(name))
	}
	settings.SetEnvPrefix("ASSETGEN")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
}

// setup loads the project file and builds the logger. The file is optional
// unless it was named explicitly.
func setup(cmd *cobra.Command) (*config.Config, hclog.Logger, error) {
	path := settings.GetString("config")
	required := cmd.Flags().Changed("config") || os.Getenv("ASSETGEN_CONFIG") != ""
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, nil, err
	}
	logger, err := initLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded", "path", path)
	return cfg, logger, nil
}

// initLogger prefers the flag or environment settings over the project file.
func initLogger(cfg *config.Config) (hclog.Logger, error) {
	level := settings.GetString("log-level")
	path := settings.GetString("log-file")
	if cfg != nil {
		if level == "" {
			level = cfg.Logging.Level
		}
		if path == "" {
			path = cfg.Logging.Path
		}
	}
	logger, err := log.Init(path, level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
