// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List the supported containers",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := ctx.formatRegistry()

			var rows [][]string
			for _, ft := range reg.FileTypes() {
				_, decodes := reg.Get(ft)
				_, encodes := reg.Encoder(ft)
				rows = append(rows, []string{ft.Name(), ft.String(), ft.Extension(), yesNo(decodes), yesNo(encodes)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Tag", "Extension", "Decode", "Encode"},
				rows,
				nil,
			))
			return nil
		},
	}
}
