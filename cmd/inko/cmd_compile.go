package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netinmax/inko/compiler"
	"github.com/netinmax/inko/project"
)

func newCompileCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a source file, or the whole project, to artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := compileOne(cmd, args[0]); err != nil {
					return err
				}
				if watch {
					return watchAndCompile(cmd, ".")
				}
				return nil
			}

			proj, err := project.Load()
			if err != nil {
				return err
			}
			files, err := proj.SourceFiles()
			if err != nil {
				return err
			}
			for _, file := range files {
				if err := compileOne(cmd, file); err != nil {
					return err
				}
			}

			if watch {
				return watchAndCompile(cmd, proj.SrcDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recompile when source files change")

	return cmd
}

func compileOne(cmd *cobra.Command, path string) error {
	out, err := compiler.Compile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, out)
	return nil
}

// watchAndCompile recompiles files as they change. Parse errors are
// reported but do not stop the watch loop.
func watchAndCompile(cmd *cobra.Command, dir string) error {
	watcher, err := project.Watch(dir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", dir)
	for {
		select {
		case path, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if err := compileOne(cmd, path); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		case err := <-watcher.Errors():
			return err
		}
	}
}
