package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/izouxv/goShamir/consensus"
	"github.com/izouxv/goShamir/curve"
	"github.com/izouxv/goShamir/document"
	"github.com/izouxv/goShamir/keystore"
	"github.com/izouxv/goShamir/shamir"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// RecoverConfig is the settings of the recover command.
type RecoverConfig struct {
	File       string `mapstructure:"file"`
	Threshold  int    `mapstructure:"threshold"`
	Exact      bool   `mapstructure:"exact"`
	PerTerm    bool   `mapstructure:"per-term"`
	Workers    int    `mapstructure:"workers"`
	SkipFailed bool   `mapstructure:"skip-failed"`
	Commitment bool   `mapstructure:"commitment"`
	Verify     string `mapstructure:"verify"`
	Output     string `mapstructure:"output"`
	Keystore   string `mapstructure:"keystore"`
	Password   string `mapstructure:"password"`
}

func newRecoverCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "recover the secret from a share document and report bad shares",
		Long: `recover reads a share document, reconstructs the secret from every
threshold-sized subset of shares and keeps the secret most subsets agree on.

	shamir recover -f shares.json
	shamir recover -f shares.json --exact --skip-failed --output json`,
		Args: noExtraArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := new(RecoverConfig)
			if err := a.settings.Unmarshal(cfg); err != nil {
				return errors.Wrap(err, "load settings")
			}
			return a.recover(cmd, cfg)
		},
	}

	cmd.Flags().StringP("file", "f", "", "share document, - for stdin")
	cmd.Flags().IntP("threshold", "k", 0, "override the threshold of the document")
	cmd.Flags().Bool("exact", false, "fail subsets whose division leaves a remainder")
	cmd.Flags().Bool("per-term", false, "truncate every Lagrange term on its own")
	cmd.Flags().IntP("workers", "w", 1, "subsets evaluated in parallel")
	cmd.Flags().Bool("skip-failed", false, "skip subsets that cannot be reconstructed")
	cmd.Flags().Bool("commitment", false, "print the secp256k1 commitment of the secret")
	cmd.Flags().String("verify", "", "check the secret against this commitment")
	cmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	cmd.Flags().String("keystore", "", "seal the secret into this keystore file")
	cmd.Flags().String("password", "", "keystore password, prefer SHAMIR_PASSWORD")
	return cmd
}

func (c *RecoverConfig) validate() error {
	if c.File == "" {
		return errors.New("file cannot be empty")
	}
	if c.Output != outputText && c.Output != outputJSON {
		return errors.Errorf("unknown output format %q", c.Output)
	}
	if c.Keystore != "" && c.Password == "" {
		return errors.New("keystore needs a password")
	}
	return nil
}

func (a *app) recover(cmd *cobra.Command, cfg *RecoverConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	logger := a.logger.Named("recover").With(zap.String("file", cfg.File))

	doc, err := a.readDocument(cmd, cfg.File)
	if err != nil {
		return err
	}
	k := doc.K
	if cfg.Threshold != 0 {
		k = cfg.Threshold
	}

	var reconstruct []shamir.Option
	if cfg.PerTerm {
		reconstruct = append(reconstruct, shamir.WithDivision(shamir.DividePerTerm))
	}
	if cfg.Exact {
		reconstruct = append(reconstruct, shamir.WithExact())
	}
	opts := []consensus.Option{
		consensus.WithLogger(a.logger),
		consensus.WithWorkers(cfg.Workers),
		consensus.WithReconstructOptions(reconstruct...),
	}
	if cfg.SkipFailed {
		opts = append(opts, consensus.WithSkipFailed())
	}

	logger.Info("recover secret",
		zap.Int("n", doc.N),
		zap.Int("k", k),
		zap.Int("workers", cfg.Workers))
	res, err := consensus.Resolve(doc.Shares, k, opts...)
	if err != nil {
		return errors.Wrap(err, "resolve secret")
	}

	report := document.NewReport(res)
	if cfg.Commitment || cfg.Keystore != "" {
		if report.Commitment, err = curve.Commitment(res.Secret); err != nil {
			return errors.Wrap(err, "commit to secret")
		}
		addr, err := curve.Address(res.Secret)
		if err != nil {
			return errors.Wrap(err, "derive address")
		}
		report.Address = addr.Hex()
	}
	if cfg.Verify != "" {
		if err := curve.VerifyCommitment(res.Secret, cfg.Verify); err != nil {
			return errors.Wrap(err, "verify commitment")
		}
		logger.Info("secret matches commitment")
	}
	if cfg.Keystore != "" {
		sealed, err := keystore.Seal(res.Secret, cfg.Password, report.Commitment)
		if err != nil {
			return errors.Wrap(err, "seal secret")
		}
		if err := os.WriteFile(cfg.Keystore, sealed, 0o600); err != nil {
			return errors.Wrapf(err, "write keystore %s", cfg.Keystore)
		}
		logger.Info("sealed secret", zap.String("keystore", cfg.Keystore))
	}

	if cfg.Output == outputJSON {
		return report.WriteJSON(a.out)
	}
	return writeText(a.out, report)
}

func (a *app) readDocument(cmd *cobra.Command, file string) (*document.Document, error) {
	if file == "-" {
		return document.Decode(cmd.InOrStdin())
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", file)
	}
	defer f.Close()

	doc, err := document.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", file)
	}
	return doc, nil
}

func writeText(w io.Writer, r *document.Report) error {
	bad := "None"
	if len(r.Bad) > 0 {
		bad = strings.Join(r.Bad, " ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Correct Secret: %s\n", r.Secret)
	fmt.Fprintf(&b, "Incorrect Key(s): %s\n", bad)
	fmt.Fprintf(&b, "Votes: %d of %d subsets\n", r.Votes, r.Subsets)
	if r.Commitment != "" {
		fmt.Fprintf(&b, "Commitment: %s\n", r.Commitment)
		fmt.Fprintf(&b, "Address: %s\n", r.Address)
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write result")
}
