package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fixedmoney/money"
	"github.com/fixedmoney/money/locale"
	"github.com/fixedmoney/money/protomoney"
	"github.com/govalues/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// envPrefix is prepended to the upper-cased flag names to form the names of
// the environment variables, for example MONEYSPLIT_COUNT.
const envPrefix = "MONEYSPLIT"

const (
	flagConfig    = "config"
	flagLocale    = "locale"
	flagCurrency  = "currency"
	flagPlaces    = "places"
	flagReceivers = "receivers"
	flagCount     = "count"
	flagRatio     = "ratio"
	flagWeights   = "weights"
	flagSeed      = "seed"
	flagJSON      = "json"
	flagVerbose   = "verbose"
)

var errNoDistribution = errors.New("one of --count, --ratio or --weights is required")

// config holds the resolved settings of a single run.
type config struct {
	Locale    string
	Currency  string
	Places    int
	Receivers string
	Count     int
	Ratio     string
	Weights   []string
	Seed      int64
	JSON      bool
	Verbose   bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "moneysplit [flags] AMOUNT",
		Short: "Split an amount of money into shares that add up to it exactly",
		Long: `Split an amount of money into shares that add up to it exactly.

The amount is split into --count equal shares, into shares of --ratio of
the amount, or into shares proportional to --weights. Shares are rounded to
--places decimal places (the scale of the currency by default) and the
remainder is handed out one quantum at a time following --receivers.

Settings are read from flags, then MONEYSPLIT_* environment variables,
then the file given by --config.`,
		Example: `# Three equal shares
moneysplit --count 3 "USD 100"

# Shares of 30% each, remainder from the last share down
moneysplit --ratio 0.3 --receivers last-to-first --locale en-US '$0.05'

# Weighted shares as google.type.Money JSON
moneysplit --weights 0.5,0.3,0.2 --json "EUR 100"`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			if err := run(cmd.OutOrStdout(), args[0], cfg, logger); err != nil {
				logger.Error("split failed", zap.String("amount", args[0]), zap.Error(err))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String(flagConfig, "", "configuration file (yaml, json or toml)")
	flags.String(flagLocale, "", "locale of the amount and the output, such as en-US (default from LC_ALL, LC_MONETARY or LANG)")
	flags.String(flagCurrency, "", "currency code of the amount, overrides any code or symbol in AMOUNT")
	flags.Int(flagPlaces, -1, "decimal places of the shares, -1 for the scale of the currency")
	flags.String(flagReceivers, money.FirstToLast.String(), "shares receiving the remainder: first-to-last, last-to-first or random")
	flags.Int(flagCount, 0, "number of equal shares")
	flags.String(flagRatio, "", "ratio of every share, in (0, 1]")
	flags.StringSlice(flagWeights, nil, "weights of the shares, each in (0, 1]")
	flags.Int64(flagSeed, 0, "seed of the random receiver order, 0 for a time-based seed")
	flags.Bool(flagJSON, false, "print shares as google.type.Money JSON, one per line")
	flags.BoolP(flagVerbose, "v", false, "log at debug level in a human-readable format")
	return cmd
}

// loadConfig reads the settings in order of precedence: changed flags,
// environment variables, configuration file and flag defaults.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) (config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return config{}, fmt.Errorf("binding flags: %w", err)
	}
	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	var weights []string
	for _, w := range v.GetStringSlice(flagWeights) {
		for _, s := range strings.Split(w, ",") {
			if s = strings.TrimSpace(s); s != "" {
				weights = append(weights, s)
			}
		}
	}
	return config{
		Locale:    v.GetString(flagLocale),
		Currency:  v.GetString(flagCurrency),
		Places:    v.GetInt(flagPlaces),
		Receivers: v.GetString(flagReceivers),
		Count:     v.GetInt(flagCount),
		Ratio:     v.GetString(flagRatio),
		Weights:   weights,
		Seed:      v.GetInt64(flagSeed),
		JSON:      v.GetBool(flagJSON),
		Verbose:   v.GetBool(flagVerbose),
	}, nil
}

// run splits the amount and writes one share per line to w.
func run(w io.Writer, amount string, cfg config, logger *zap.Logger) error {
	tag := locale.FromEnv()
	if cfg.Locale != "" {
		t, err := language.Parse(cfg.Locale)
		if err != nil {
			return fmt.Errorf("parsing locale %q: %w", cfg.Locale, err)
		}
		tag = t
	}

	total, err := parseAmount(amount, cfg.Currency, tag)
	if err != nil {
		return err
	}
	recv, err := money.ParseReceivers(cfg.Receivers)
	if err != nil {
		return err
	}
	places := money.Places(total.Curr().Scale()) //nolint:gosec
	if cfg.Places < -1 || cfg.Places > int(money.MaxPlaces) {
		return &money.ArgumentError{Arg: flagPlaces, Value: cfg.Places, Reason: "must be within [-1, 9]"}
	}
	if cfg.Places >= 0 {
		places = money.Places(cfg.Places) //nolint:gosec
	}

	d, err := money.NewDistributor(total, recv, places)
	if err != nil {
		return err
	}
	if recv == money.Random && cfg.Seed != 0 {
		d = d.WithSource(money.NewMT19937(cfg.Seed))
	}
	logger.Debug("splitting",
		zap.Stringer("total", total),
		zap.Stringer("receivers", recv),
		zap.Int("places", int(places)),
		zap.Stringer("locale", tag),
	)

	shares, err := distribute(d, cfg)
	if err != nil {
		return err
	}
	logger.Debug("split", zap.Int("shares", len(shares)), zap.Stringer("quantum", d.Quantum()))

	for _, s := range shares {
		line := s.String()
		switch {
		case cfg.JSON:
			b, err := protomoney.MarshalJSON(s)
			if err != nil {
				return err
			}
			line = string(b)
		case !tag.IsRoot():
			line = locale.Format(s, tag)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing shares: %w", err)
		}
	}
	return nil
}

func parseAmount(s, curr string, tag language.Tag) (money.Money, error) {
	if curr != "" {
		var c money.Currency
		if err := c.UnmarshalText([]byte(strings.ToUpper(curr))); err != nil {
			return money.Money{}, fmt.Errorf("parsing --%v: %w", flagCurrency, err)
		}
		d, err := decimal.Parse(strings.TrimSpace(s))
		if err != nil {
			return money.Money{}, fmt.Errorf("parsing amount %q: %w", s, err)
		}
		return money.NewMoney(c, d)
	}
	return locale.Parse(s, tag)
}

func distribute(d money.Distributor, cfg config) ([]money.Money, error) {
	set := 0
	for _, ok := range []bool{cfg.Count != 0, cfg.Ratio != "", len(cfg.Weights) != 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errNoDistribution
	}

	switch {
	case cfg.Count != 0:
		return d.DistributeCount(cfg.Count)
	case cfg.Ratio != "":
		r, err := decimal.Parse(cfg.Ratio)
		if err != nil {
			return nil, fmt.Errorf("parsing ratio %q: %w", cfg.Ratio, err)
		}
		return d.DistributeRatio(r)
	default:
		ws := make([]decimal.Decimal, len(cfg.Weights))
		for i, s := range cfg.Weights {
			w, err := decimal.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("parsing weight %q: %w", s, err)
			}
			ws[i] = w
		}
		return d.DistributeWeights(ws...)
	}
}
