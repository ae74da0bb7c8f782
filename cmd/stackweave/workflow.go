package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackweave/stackweave/internal/adapters/execution"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workflow-id>",
	Short: "Check whether a saved workflow is executable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		snap := rt.Workflows.Load(cmd.Context(), args[0])
		res := rt.Validator.All(snap)
		if res.OK {
			fmt.Println("Workflow is executable.")
			return nil
		}
		for _, reason := range res.Reasons {
			fmt.Println("-", reason)
		}
		return fmt.Errorf("workflow %s is not executable", args[0])
	},
}

var executeFile string

var executeCmd = &cobra.Command{
	Use:   "execute <workflow-id>",
	Short: "Validate a saved workflow and submit it to the execution service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		workflowID := args[0]
		snap := rt.Workflows.Load(cmd.Context(), workflowID)

		var doc *execution.Document
		if executeFile != "" {
			f, err := os.Open(executeFile)
			if err != nil {
				return err
			}
			defer f.Close()
			doc = &execution.Document{Name: filepath.Base(executeFile), Reader: f}
		}

		res, out := rt.Execute(cmd.Context(), workflowID, snap, doc)
		if !res.OK {
			return fmt.Errorf("not executable: %s", res.Reasons[0])
		}
		fmt.Println(out.UserMessage())
		if out.Status == execution.StatusSuccess {
			fmt.Println("\nChat session opened. Continue with 'stackweave chat", workflowID+"'.")
		}
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat <workflow-id>",
	Short: "Chat with a previously executed workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		workflowID := args[0]
		ctx := cmd.Context()

		session := rt.Client.ResumeSession(workflowID, rt.Transcripts.Load(ctx, workflowID))
		for _, m := range session.Messages() {
			fmt.Printf("[%s] %s\n", m.Role, m.Content)
		}

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" || text == "exit" {
				break
			}
			reply := session.Send(ctx, text)
			fmt.Printf("[%s] %s\n> ", reply.Role, reply.Content)
		}
		return rt.Transcripts.Save(ctx, workflowID, session.Messages())
	},
}

func init() {
	executeCmd.Flags().StringVar(&executeFile, "file", "", "document to upload for the knowledge base stage")
}
