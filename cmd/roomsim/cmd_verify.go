package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roomsim/internal/trace"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify TRACE",
		Short: "Replay a recorded trace and check every frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			tr, err := trace.Open(args[0])
			if err != nil {
				return err
			}
			defer tr.Close()

			rep, err := trace.Verify(tr)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			log.Debug("trace verified", "path", args[0], "steps", rep.Steps)
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), runOutput{Config: tr.Header().Config, Report: rep, Trace: args[0]})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d frames, %.2f%% cleaned\n", args[0], rep.Steps+1, rep.PercentCleaned)
			return err
		},
	}
}
