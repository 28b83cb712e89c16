package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mcsdevv/webanalyzer/internal/analyzer"
	"github.com/mcsdevv/webanalyzer/internal/config"
	"github.com/mcsdevv/webanalyzer/internal/dnsinfo"
	"github.com/mcsdevv/webanalyzer/internal/hostfinder"
	"github.com/mcsdevv/webanalyzer/internal/httpclient"
	"github.com/mcsdevv/webanalyzer/internal/logging"
	"github.com/mcsdevv/webanalyzer/internal/service"
	"github.com/mcsdevv/webanalyzer/internal/whoisinfo"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webanalyzer",
		Short: "Analyzes the technology stack behind a website",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return initializeConfig()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.AddCommand(newServeCmd(), newAnalyzeCmd())
	return root
}

// Execute runs the root command with the signal-aware context.
func Execute(ctx context.Context) error {
	err := newRootCmd().ExecuteContext(ctx)
	if logger != nil {
		logger.Sync()
	}
	if err != nil && logger == nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

// initializeConfig runs before any command: defaults, then config file,
// then WEBANALYZER_* environment overrides, then the logger.
func initializeConfig() error {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("WEBANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and environment variables apply.
	}

	loaded, err := config.FromViper(v)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.New(cfg.Logger)
	return nil
}

// buildService wires the full analysis pipeline from the loaded config.
func buildService() *service.Service {
	client := httpclient.NewClient(cfg.Fetcher, logger)
	return service.New(service.Deps{
		Fetcher: client,
		Engine:  analyzer.NewEngine(logger),
		Hosting: hostfinder.New(cfg.HostFinder, logger),
		DNS:     dnsinfo.NewResolver(cfg.DNS, logger),
		Whois:   whoisinfo.New(cfg.Whois, logger),
	}, cfg.Analysis, logger)
}
