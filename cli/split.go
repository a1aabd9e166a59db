package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/izouxv/goShamir/bigint"
	"github.com/izouxv/goShamir/document"
	"github.com/izouxv/goShamir/shamir"
)

// SplitConfig is the settings of the split command.
type SplitConfig struct {
	Secret    string `mapstructure:"secret"`
	Shares    int    `mapstructure:"shares"`
	Threshold int    `mapstructure:"threshold"`
	Base      int    `mapstructure:"base"`
	Out       string `mapstructure:"out"`
}

func newSplitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "split a secret into a share document",
		Long: `split writes n shares of a decimal secret, any k of which recover it.

	shamir split --secret 79836264049851 -n 10 -k 7 --base 16`,
		Args: noExtraArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := new(SplitConfig)
			if err := a.settings.Unmarshal(cfg); err != nil {
				return errors.Wrap(err, "load settings")
			}
			return a.split(cfg)
		},
	}

	cmd.Flags().StringP("secret", "s", "", "decimal secret, prefer SHAMIR_SECRET")
	cmd.Flags().IntP("shares", "n", 0, "number of shares")
	cmd.Flags().IntP("threshold", "k", 0, "shares needed to recover")
	cmd.Flags().IntP("base", "b", 10, "base the share values are written in")
	cmd.Flags().String("out", "", "output file, stdout when empty")
	return cmd
}

func (a *app) split(cfg *SplitConfig) error {
	if cfg.Secret == "" {
		return errors.New("secret cannot be empty")
	}
	secret, err := bigint.Parse(cfg.Secret)
	if err != nil {
		return errors.Wrap(err, "parse secret")
	}

	shares, err := shamir.Split(secret, cfg.Shares, cfg.Threshold, cfg.Base)
	if err != nil {
		return errors.Wrap(err, "split secret")
	}
	doc := &document.Document{
		Keys:   document.Keys{N: cfg.Shares, K: cfg.Threshold},
		Shares: shares,
	}

	if cfg.Out == "" {
		return document.Encode(a.out, doc)
	}
	raw, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Out, raw, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", cfg.Out)
	}
	a.logger.Info("wrote share document",
		zap.String("out", cfg.Out),
		zap.Int("n", cfg.Shares),
		zap.Int("k", cfg.Threshold))
	return nil
}
