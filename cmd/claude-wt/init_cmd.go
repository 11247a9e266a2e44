package main

import (
	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/config"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a starter config file",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Write a commented config file to ~/.config/claude-wt/config.toml.
Existing files are left alone unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path, err := config.Init(force)
			if err != nil {
				return err
			}

			output.FromContext(ctx).Path(path)
			log.FromContext(ctx).Println("Edit the file to set your scan directory, agent, and Linear credentials")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
