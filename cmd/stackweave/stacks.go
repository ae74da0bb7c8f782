package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved stacks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		stacks := rt.Index.List(cmd.Context())
		if len(stacks) == 0 {
			fmt.Println("No stacks yet. Create one with 'stackweave create'.")
			return nil
		}
		for _, s := range stacks {
			fmt.Printf("%s  %s", s.ID, s.Name)
			if s.Description != "" {
				fmt.Printf("  (%s)", s.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create a new stack",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		desc := ""
		if len(args) > 1 {
			desc = args[1]
		}
		stack, err := rt.Index.Create(cmd.Context(), args[0], desc)
		if err != nil {
			return err
		}
		fmt.Printf("Created stack %s (%s)\n", stack.Name, stack.ID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <stack-id>",
	Short: "Delete a stack, its workflow, and its transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		return rt.Index.Remove(cmd.Context(), args[0])
	},
}
