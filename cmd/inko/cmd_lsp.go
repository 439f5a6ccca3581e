package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/netinmax/inko/lsp"
)

func newLSPCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 1
			if debug {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)

			server := lsp.NewServer(version)
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable verbose protocol logging")

	return cmd
}
