package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/jekabolt/salesboard/internal/targetcopy"
	"github.com/spf13/cobra"
)

func copyTargetsCmd() *cobra.Command {
	var (
		key     string
		apiBase string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:     "copy-targets FROM TO",
		Short:   "Copy every target of month FROM (YYYY-MM) into month TO",
		Example: "  ADMIN_KEY=abc123 salesboard copy-targets 2025-10 2025-11",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := entity.ParseMonth(args[0])
			if err != nil {
				return err
			}
			to, err := entity.ParseMonth(args[1])
			if err != nil {
				return err
			}

			cli, err := targetcopy.New(&targetcopy.Config{
				APIBase:  apiBase,
				AdminKey: key,
				Timeout:  timeout,
			}, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			res, err := cli.Copy(cmd.Context(), from, to)
			if err != nil {
				return fmt.Errorf("copy targets: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: %d targets copied from %s to %s\n", res.Copied, res.From, res.To)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", os.Getenv("ADMIN_KEY"), "admin key (defaults to $ADMIN_KEY)")
	cmd.Flags().StringVar(&apiBase, "api-base", envOr("SALESBOARD_API_BASE", "http://localhost:8080"), "salesboard API base url")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
