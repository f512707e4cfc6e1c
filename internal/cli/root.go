package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/evidentia/internal/logging"
	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/pipeline"
	"github.com/ppiankov/evidentia/internal/profile"
	"github.com/ppiankov/evidentia/internal/validate"
)

const version = "evidentia v0.1.0"

// Exit codes
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitReadiness = 2
)

var (
	cfgFile  string
	verbose  bool
	logLevel string

	inputPath  string
	outputPath string
	auditPath  string
	noAuditMD  bool
)

// rootCmd scores one document
var rootCmd = &cobra.Command{
	Use:   "evidentia",
	Short: "Evidentia - probative scoring of attribution claims",
	Long: `Evidentia scores the attribution claims of an already-extracted document.

Each evidence item gets a probative weight from five features (independence,
authentication, method, procedural regularity, temporal proximity). Claims are
scored on six axes, penalized for circularity and other defects, and rolled up
into document-level scores and a seriousness gate.

It does not decide who is responsible for anything. It measures how well the
document supports what it says.

Example:
  evidentia --input extraction.json
  evidentia --input extraction.json --consistency-audit audit.json --profile strict
  evidentia --input extraction.json --output out/scoring_report.json --workers 4`,
	Args:          cobra.NoArgs,
	RunE:          runScore,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.evidentia/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (forces debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("profile", profile.Balanced, "scoring profile ("+strings.Join(profile.Names(), ", ")+")")
	rootCmd.PersistentFlags().Int("workers", 0, "parallel claim scorers per document (default: number of CPUs)")

	// Scoring flags
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "structured extraction JSON (required)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "scoring_report.json", "full report path; derived files are written beside it")
	rootCmd.Flags().StringVar(&auditPath, "consistency-audit", "", "optional consistency audit JSON")
	rootCmd.Flags().BoolVar(&noAuditMD, "no-audit-md", false, "do not write audit.md")
	_ = rootCmd.MarkFlagRequired("input")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("scoring.workers", rootCmd.PersistentFlags().Lookup("workers"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.evidentia")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match EVIDENTIA_*
	viper.SetEnvPrefix("EVIDENTIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every scalar key so env vars can override it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("profile", cfg.Profile)
	viper.SetDefault("scoring.workers", cfg.Scoring.Workers)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.write_audit_md", cfg.Output.WriteAuditMD)
	viper.SetDefault("output.pretty", cfg.Output.Pretty)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.format", cfg.Logging.Format)
}

// loadConfig merges defaults, config file, env vars and flags into a Config
// and builds the logger it describes
func loadConfig() (*model.Config, *zap.Logger, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if _, ok := profile.Lookup(cfg.Profile); !ok {
		return nil, nil, fmt.Errorf("unknown profile %q (available: %s)", cfg.Profile, strings.Join(profile.Names(), ", "))
	}
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))

	level := cfg.Logging.Level
	if cfg.Output.Verbose {
		level = "debug"
	}
	return cfg, logging.New(level, cfg.Logging.Format), nil
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if noAuditMD {
		cfg.Output.WriteAuditMD = false
	}

	p := pipeline.NewPipeline(cfg, logger)
	result, err := p.ScoreFile(context.Background(), inputPath, auditPath)
	if err != nil {
		return err
	}

	if err := p.RenderReport(result.Report, outputPath); err != nil {
		return err
	}

	p.Renderer().RenderSummary(cmd.OutOrStdout(), result.Report)
	return nil
}

// readinessEnvelope is printed on stdout when the readiness gate fails
type readinessEnvelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleError reports err and returns the process exit code. A readiness
// failure prints a JSON envelope on stdout and exits 2; anything else goes
// to stderr and exits 1.
func HandleError(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	var readiness *validate.ReadinessError
	if errors.As(err, &readiness) {
		data, mErr := json.Marshal(readinessEnvelope{
			OK:      false,
			Error:   "icj_scoring_validation_failed",
			Message: readiness.Error(),
		})
		if mErr == nil {
			fmt.Fprintln(stdout, string(data))
			return ExitReadiness
		}
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFailure
}
