package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zostay/go-mailutil/dns"
	"github.com/zostay/go-mailutil/internal/config"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mailutil",
	Short: "Tools for parsing addresses and sending mail",

	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debugging output to stderr")
}

// Execute runs the command named on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	logger = newLogger(verbose)
	return nil
}

// newLogger logs to stderr so that stdout stays clean for command output.
func newLogger(verbose bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func newResolver() *dns.Resolver {
	return dns.New(cfg.Resolver(), logger)
}
