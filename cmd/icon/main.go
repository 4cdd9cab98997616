package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	icon "github.com/edatts/go-icon"
)

// Version info (injected at build time)
var (
	Version = "dev"
)

type cliState struct {
	configFile string
	endpoint   string
	debug      bool

	in  io.Reader
	out io.Writer
}

func main() {
	root := newRootCmd(os.Stdin, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	st := &cliState{in: in, out: out}

	rootCmd := &cobra.Command{
		Use:           "icon",
		Short:         "ICON JSON-RPC v3 client",
		Long:          `Generate keys, hash and sign transactions offline, and submit them to an ICON node.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&st.configFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&st.endpoint, "endpoint", "e", "", "Node endpoint, overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&st.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(keygenCmd(st))
	rootCmd.AddCommand(addressCmd(st))
	rootCmd.AddCommand(hashCmd(st))
	rootCmd.AddCommand(signCmd(st))
	rootCmd.AddCommand(sendCmd(st))
	rootCmd.AddCommand(balanceCmd(st))

	return rootCmd
}

func (st *cliState) loadConfig() (*icon.Config, error) {
	cfg := icon.DefaultConfig()
	if st.configFile != "" {
		loaded, err := icon.LoadConfig(st.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if st.endpoint != "" {
		cfg.Endpoint = st.endpoint
	}
	if st.debug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

func (st *cliState) newClient() (*icon.Client, *zap.Logger, error) {
	cfg, err := st.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := icon.NewLogger(cfg.Debug)

	provider, err := cfg.NewProvider(logger)
	if err != nil {
		return nil, nil, err
	}

	return icon.NewClient(provider, icon.WithLogger(logger)), logger, nil
}
