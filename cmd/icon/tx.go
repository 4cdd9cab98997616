package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	icon "github.com/edatts/go-icon"
)

func hashCmd(st *cliState) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hash <tx.json>",
		Short: "Print the hash of a transaction",
		Long:  `Prints the hash a node will assign to the transaction in tx.json. Any signature field is ignored.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMapping(args[0])
			if err != nil {
				return err
			}

			if verbose {
				serialized, err := icon.SerializeTransaction(m)
				if err != nil {
					return err
				}
				fmt.Fprintln(st.out, serialized)
			}

			hash, err := icon.HashTransaction(m)
			if err != nil {
				return err
			}

			fmt.Fprintln(st.out, hash)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the serialized transaction")

	return cmd
}

func signCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <tx.json>",
		Short: "Sign a transaction and print the payload",
		Long:  `Validates and signs the transaction in tx.json. The private key is read from ICON_PRIVATE_KEY or prompted for.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMapping(args[0])
			if err != nil {
				return err
			}

			tx, err := icon.TransactionFromMapping(m)
			if err != nil {
				return err
			}

			acc, err := st.readAccount()
			if err != nil {
				return err
			}

			signed, err := icon.NewSignedTransaction(tx, acc)
			if err != nil {
				return err
			}

			return writeJSON(st, signed.Payload())
		},
	}
}

func sendCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "send <signed.json>",
		Short: "Submit a signed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMapping(args[0])
			if err != nil {
				return err
			}

			signed, err := icon.SignedTransactionFromPayload(m)
			if err != nil {
				return err
			}

			client, logger, err := st.newClient()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			hash, err := client.SendTransaction(ctx, signed)
			if err != nil {
				logger.Debug("send failed", zap.Error(err))
				return err
			}

			fmt.Fprintln(st.out, hash)
			return nil
		},
	}
}

func balanceCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the balance of an address in loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := icon.ValidateAddress(args[0]); err != nil {
				return err
			}

			client, logger, err := st.newClient()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			balance, err := client.GetBalance(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(st.out, balance.String())
			return nil
		},
	}
}

func readMapping(path string) (icon.Mapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading file: %w", err)
	}

	var m icon.Mapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed decoding %s: %w", path, err)
	}

	return m, nil
}

func writeJSON(st *cliState, v interface{}) error {
	enc := json.NewEncoder(st.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
