package main

import (
	"fmt"
	"os"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/netinmax/inko/compiler"
	"github.com/netinmax/inko/format"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := compiler.ParseFile(args[0])
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				if err := format.NewASTJSONEncoder(os.Stdout).Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "tree":
				fmt.Print(node.String())
			case "go":
				litter.Dump(node)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree, go)")

	return cmd
}
