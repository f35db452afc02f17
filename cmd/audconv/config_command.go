// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ik5/audconv/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Work with preset files",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	var path string
	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Print or write a preset holding the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Sample()
			if err != nil {
				return err
			}

			if path == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			if err := os.WriteFile(path, out, 0o644); err != nil {
				return fmt.Errorf("write preset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample preset to %s\n", path)
			return nil
		},
	}
	sampleCmd.Flags().StringVar(&path, "path", "", "Write to this file instead of stdout")

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a preset parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preset valid")
			return nil
		},
	}

	configCmd.AddCommand(sampleCmd, validateCmd)
	return configCmd
}
