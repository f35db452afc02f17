// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/converter"
	"github.com/spf13/cobra"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show the container and native format of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, path := range args {
				info, err := converter.Inspect(path, ctx.formatRegistry())
				if err != nil {
					return err
				}
				rows = append(rows, inspectRow(info))
			}

			headers := []string{"File", "Container", "Encoding", "Rate", "Channels", "Bits", "Layout", "Frames", "Duration"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight, alignRight}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}

func inspectRow(info converter.Info) []string {
	f := info.Format

	bits := "-"
	if f.BitsPerChannel > 0 {
		bits = strconv.Itoa(f.BitsPerChannel)
	}

	frames, duration := "unknown", "unknown"
	if info.Frames >= 0 {
		frames = humanize.Comma(info.Frames)
		duration = fmt.Sprintf("%.3fs", info.Duration())
	}

	return []string{
		info.Path,
		info.FileType.Name(),
		f.FormatID.String(),
		strconv.FormatFloat(f.SampleRate, 'f', -1, 64),
		strconv.Itoa(f.ChannelCount),
		bits,
		layout(f),
		frames,
		duration,
	}
}

func layout(f audio.Format) string {
	if !f.IsPCM() {
		return "compressed"
	}

	kind := "unsigned int"
	switch {
	case f.IsFloat():
		kind = "float"
	case f.IsSignedInteger():
		kind = "signed int"
	}

	if f.IsBigEndian() {
		return kind + ", big endian"
	}
	return kind + ", little endian"
}
