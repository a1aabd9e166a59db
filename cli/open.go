package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/izouxv/goShamir/curve"
	"github.com/izouxv/goShamir/keystore"
)

func newOpenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "print the secret sealed in a keystore",
		Args:  noExtraArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.open(a.settings.GetString("keystore"), a.settings.GetString("password"))
		},
	}

	cmd.Flags().String("keystore", "", "keystore file written by recover")
	cmd.Flags().String("password", "", "keystore password, prefer SHAMIR_PASSWORD")
	return cmd
}

func (a *app) open(file, password string) error {
	if file == "" {
		return errors.New("keystore cannot be empty")
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "read %s", file)
	}

	secret, key, err := keystore.Open(raw, password)
	if err != nil {
		return errors.Wrapf(err, "open %s", file)
	}
	if key.Commitment != "" {
		if err := curve.VerifyCommitment(secret, key.Commitment); err != nil {
			return errors.Wrap(err, "sealed secret")
		}
	}

	_, err = fmt.Fprintf(a.out, "Secret: %s\n", secret)
	return errors.Wrap(err, "write secret")
}
