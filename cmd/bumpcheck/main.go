package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dephub/dephub-release/providers/fetchers"
	"github.com/dephub/dephub-release/providers/parsers"
	"github.com/dephub/dephub-release/release"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Check flags
	manifestPath string
	nextPath     string
	branch       string
	repoAddr     string
	ref          string
	checkTag     bool
	checkReg     bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bumpcheck",
	Short: "Validate a proposed release version bump",
	Long: `Compares the version in the manifest with the proposed next version,
classifies the bump and enforces the branch policy:

  major, minor  ->  main
  patch         ->  v<major>.<minor>.x

Prints the bump kind (patch, minor or major) and exits non-zero on any violation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		return runCheck(ctx, cfg, branch, os.Getenv, cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for remote lookups")

	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "JSON manifest holding the current version (default package.json)")
	rootCmd.Flags().StringVar(&nextPath, "next-file", "", "File holding the proposed next version (default .versions/next.txt)")
	rootCmd.Flags().StringVarP(&branch, "branch", "b", "", "Current branch (default from CI environment)")
	rootCmd.Flags().StringVar(&repoAddr, "repo", "", "GitHub repository to read the current manifest from (e.g. owner/repo)")
	rootCmd.Flags().StringVar(&ref, "ref", "", "Git ref of --repo to read the current manifest from")
	rootCmd.Flags().BoolVar(&checkTag, "check-tag", false, "Fail when the next version tag already exists in --repo")
	rootCmd.Flags().BoolVar(&checkReg, "check-registry", false, "Fail when the next version is already published on Open VSX")
}

// applyFlags overrides config file values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Manifest = manifestPath
	}
	if flags.Changed("next-file") {
		cfg.NextFile = nextPath
	}
	if flags.Changed("repo") {
		cfg.Repo = repoAddr
	}
	if flags.Changed("ref") {
		cfg.Ref = ref
	}
	if flags.Changed("check-tag") {
		cfg.CheckTag = checkTag
	}
	if flags.Changed("check-registry") {
		cfg.CheckRegistry = checkReg
	}
}

// runCheck wires sources, the optional tag lookup and the validator, then prints the bump kind.
func runCheck(ctx context.Context, cfg *Config, branch string, getenv func(string) string, out io.Writer, logger *zap.Logger) error {
	if branch == "" {
		branch = branchFromEnv(getenv)
	}
	if branch == "" {
		return errors.New("no branch given and none found in the CI environment")
	}

	httpClient := githubHTTPClient(getenv("GITHUB_TOKEN"))

	local := release.NewLocalSource(cfg.rootDir(), cfg.Manifest, cfg.NextFile)
	current := local
	if cfg.Repo != "" {
		var err error
		if current, err = release.NewGitSource(httpClient, cfg.Repo, cfg.Ref, cfg.Manifest, cfg.NextFile); err != nil {
			return err
		}
		logger.Debug("Reading current manifest from repository", zap.String("repo", cfg.Repo), zap.String("ref", cfg.Ref))
	}

	opts := []release.Option{release.WithLogger(logger)}
	if cfg.CheckTag {
		if cfg.Repo == "" {
			return errors.New("--check-tag requires --repo")
		}
		repo, err := release.ParseRepo(cfg.Repo)
		if err != nil {
			return err
		}
		opts = append(opts, release.WithTagLookup(release.NewGitHubTagLookup(httpClient, repo.Owner, repo.Name)))
	}

	if cfg.CheckRegistry {
		m, err := parsers.NewManifestParser(fetchers.NewLocalFetcher(cfg.rootDir()), cfg.Manifest).Manifest(ctx)
		if err != nil {
			return err
		}
		registry, err := release.NewOpenVSXLookup(nil, m.Publisher, m.Name)
		if err != nil {
			return err
		}
		opts = append(opts, release.WithRegistryLookup(registry))
	}

	kind, err := release.NewValidator(current.CurrentReader(ctx), local.NextReader(ctx), branch, opts...).Validate(ctx)
	if err != nil {
		logger.Error("Release bump rejected", zap.String("branch", branch), zap.Error(err))
		return err
	}

	_, err = fmt.Fprintln(out, kind)
	return err
}

// bearerTransport adds a GitHub token to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(r)
}

func githubHTTPClient(token string) *http.Client {
	if token == "" {
		return nil
	}
	return &http.Client{Transport: &bearerTransport{token: token, base: http.DefaultTransport}}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
