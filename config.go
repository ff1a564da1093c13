package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/couplebox/games"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	database     string
	otelEndpoint string
	pollInterval time.Duration
	port         int
	prefix       string
	profile      bool
	seedFile     string
	strict       bool
	tlsCert      string
	tlsKey       string
	verbose      bool
	version      bool

	quizRounds           int
	thisThatRounds       int
	likelyRounds         int
	wouldYouRatherRounds int
	dareRounds           int
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if strings.TrimSpace(c.database) == "" {
		return errors.New("--database must not be empty")
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("invalid poll interval (must be positive): %s", c.pollInterval)
	}
	sizes := c.setSizes()
	for _, category := range games.Categories {
		if n := sizes[category]; n < 1 {
			return fmt.Errorf("invalid round count for %s (must be at least 1): %d", category, n)
		}
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// setSizes is how many questions each room draws per category.
func (c *Config) setSizes() games.SetSizes {
	return games.SetSizes{
		games.CategoryQuiz:           c.quizRounds,
		games.CategoryThisThat:       c.thisThatRounds,
		games.CategoryLikely:         c.likelyRounds,
		games.CategoryWouldYouRather: c.wouldYouRatherRounds,
		games.CategoryDare:           c.dareRounds,
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("COUPLEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "couplebox",
		Short:         "A party game for two, served as a single webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	sizes := games.DefaultSetSizes()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: COUPLEBOX_BIND)")
	fs.StringVarP(&cfg.database, "database", "d", "couplebox.db", "path to sqlite database (env: COUPLEBOX_DATABASE)")
	fs.IntVar(&cfg.dareRounds, "dare-rounds", sizes[games.CategoryDare], "dares drawn per room (env: COUPLEBOX_DARE_ROUNDS)")
	fs.IntVar(&cfg.likelyRounds, "likely-rounds", sizes[games.CategoryLikely], "most-likely questions drawn per room (env: COUPLEBOX_LIKELY_ROUNDS)")
	fs.StringVar(&cfg.otelEndpoint, "otel-endpoint", "", "OTLP/HTTP endpoint for trace export, disabled if empty (env: COUPLEBOX_OTEL_ENDPOINT)")
	fs.DurationVar(&cfg.pollInterval, "poll-interval", 2*time.Second, "how often clients poll for room state (env: COUPLEBOX_POLL_INTERVAL)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: COUPLEBOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: COUPLEBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: COUPLEBOX_PROFILE)")
	fs.IntVar(&cfg.quizRounds, "quiz-rounds", sizes[games.CategoryQuiz], "quiz questions drawn per room (env: COUPLEBOX_QUIZ_ROUNDS)")
	fs.StringVar(&cfg.seedFile, "seed-file", "", "JSON file of extra questions to seed at startup (env: COUPLEBOX_SEED_FILE)")
	fs.BoolVar(&cfg.strict, "strict", false, "reject out-of-order phase changes and stale advances (env: COUPLEBOX_STRICT)")
	fs.IntVar(&cfg.thisThatRounds, "this-that-rounds", sizes[games.CategoryThisThat], "this-or-that questions drawn per room (env: COUPLEBOX_THIS_THAT_ROUNDS)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: COUPLEBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: COUPLEBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: COUPLEBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: COUPLEBOX_VERSION)")
	fs.IntVar(&cfg.wouldYouRatherRounds, "would-you-rather-rounds", sizes[games.CategoryWouldYouRather], "would-you-rather questions drawn per room (env: COUPLEBOX_WOULD_YOU_RATHER_ROUNDS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("couplebox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
