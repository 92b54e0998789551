package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapwise/storymap/pkg/commands"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "storymap",
		Short:         "Story mapping backend maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	for _, c := range commands.NewUtilityCommands() {
		cmd.AddCommand(c)
	}
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
