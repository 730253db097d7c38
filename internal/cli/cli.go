// Package cli builds the corebell command tree. The window itself is started
// by an EditFunc supplied by the binary, which keeps this package cgo-free.
package cli

import (
	"github.com/spf13/cobra"

	"corebell/internal/config"
	"corebell/internal/env"
	"corebell/internal/report"
)

// EditOptions is everything the edit command collects from the command line.
type EditOptions struct {
	ConfigFile string
	EnvFile    string
	Scene      string
	Fullscreen bool
}

// EditFunc opens the editor.
type EditFunc func(EditOptions) error

// NewRootCmd returns the root command. Bare "corebell" behaves like "corebell edit".
func NewRootCmd(edit EditFunc) *cobra.Command {
	opts := &EditOptions{}
	root := &cobra.Command{
		Use:          "corebell",
		Short:        "Corebell is a 3D scene editor with a command terminal and an AI assistant",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runEdit(opts, edit),
	}
	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", config.DefaultPath, "preferences file")
	root.PersistentFlags().StringVar(&opts.EnvFile, "env", env.DefaultFile, "file with API keys (KEY=VALUE lines)")
	addEditFlags(root, opts)

	root.AddCommand(newEditCmd(opts, edit), newCheckCmd())
	return root
}

func newEditCmd(opts *EditOptions, edit EditFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [scene.json|bundle.zip|url]",
		Short: "Open the editor window, optionally loading a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEdit(opts, edit),
	}
	addEditFlags(cmd, opts)
	return cmd
}

func addEditFlags(cmd *cobra.Command, opts *EditOptions) {
	cmd.Flags().BoolVar(&opts.Fullscreen, "fullscreen", false, "start fullscreen")
}

func runEdit(opts *EditOptions, edit EditFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		o := *opts
		if len(args) == 1 {
			o.Scene = args[0]
		}
		return edit(o)
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <scene.json|bundle.zip>",
		Short: "Load a scene without opening a window and report what it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Check(cmd.OutOrStdout(), args[0])
		},
	}
}
