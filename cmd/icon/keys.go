package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	icon "github.com/edatts/go-icon"
)

const privateKeyEnv = "ICON_PRIVATE_KEY"

func keygenCmd(st *cliState) *cobra.Command {
	var showPriv bool

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := icon.GenerateAccount()
			if err != nil {
				return err
			}

			fmt.Fprintf(st.out, "address:    %s\n", acc.Address())
			fmt.Fprintf(st.out, "public key: %s\n", acc.PublicKey().Hex())
			if showPriv {
				fmt.Fprintf(st.out, "private key: %s\n", acc.PrivateKey().Hex())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPriv, "show-private", false, "Print the private key, store it somewhere safe")

	return cmd
}

func addressCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address of a private key",
		Long:  `Reads the private key from ` + privateKeyEnv + ` or prompts for it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := st.readAccount()
			if err != nil {
				return err
			}

			fmt.Fprintln(st.out, acc.Address())
			return nil
		},
	}
}

func (st *cliState) readAccount() (*icon.Account, error) {
	privHex, err := st.readPrivateKey()
	if err != nil {
		return nil, err
	}
	return icon.AccountFromHex(privHex)
}

// The key never appears on the command line. It comes from the environment,
// a hidden terminal prompt, or the first line of a piped stdin.
func (st *cliState) readPrivateKey() (string, error) {
	if v := strings.TrimSpace(os.Getenv(privateKeyEnv)); v != "" {
		return v, nil
	}

	if f, ok := st.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Private key: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed reading private key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(st.in).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("failed reading private key: %w", err)
		}
		return "", errors.New("no private key given")
	}

	return line, nil
}
