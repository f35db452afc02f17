// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/converter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	rate        int
	channels    int
	bits        int
	formatID    string
	fileType    string
	chunkFrames int
	debug       bool
	progress    bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert an audio file",
		Long: "Convert an audio file to linear PCM at the requested rate, channel count and bit depth.\n" +
			"The output container follows --file-type, else the output extension, else the preset (CAF by default).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			cfg, err := flags.apply(cmd, preset.Convert, args[0], args[1])
			if err != nil {
				return err
			}

			logger, err := ctx.logger(cmd.ErrOrStderr(), cfg.DebugEnabled)
			if err != nil {
				return err
			}

			opts := []converter.Option{
				converter.WithRegistry(ctx.formatRegistry()),
				converter.WithLogger(logger),
			}

			var bar *progressbar.ProgressBar
			if flags.progress {
				bar = newProgressBar(cmd.ErrOrStderr(), args[0])
				opts = append(opts, converter.WithProgress(func(p converter.Progress) {
					if p.TotalFrames > 0 {
						bar.ChangeMax64(p.TotalFrames)
					}
					_ = bar.Set64(p.FramesWritten)
				}))
			}

			res, err := converter.New(cfg, opts...).Convert(cmd.Context())
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), cfg, res)
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.rate, "rate", "r", 0, "Output sample rate in Hz")
	cmd.Flags().IntVarP(&flags.channels, "channels", "n", 0, "Output channel count")
	cmd.Flags().IntVarP(&flags.bits, "bits", "b", 0, "Output bit depth: 8, 16, 24 or 32")
	cmd.Flags().StringVar(&flags.formatID, "format-id", "", "Output encoding four character code (lpcm)")
	cmd.Flags().StringVarP(&flags.fileType, "file-type", "t", "", "Output container: caf, wav or aiff")
	cmd.Flags().IntVar(&flags.chunkFrames, "chunk-frames", 0, "Frames per conversion chunk")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Log every state transition and chunk")
	cmd.Flags().BoolVarP(&flags.progress, "progress", "p", false, "Show a progress bar on stderr")

	return cmd
}

// apply layers the set flags over the preset.
func (f convertFlags) apply(cmd *cobra.Command, cfg converter.Config, input, output string) (converter.Config, error) {
	cfg.InputFilePath = input
	cfg.OutputFilePath = output

	changed := cmd.Flags().Changed

	if changed("rate") {
		cfg.OutputSampleRate = f.rate
	}
	if changed("channels") {
		cfg.OutputNumberChannels = f.channels
	}
	if changed("bits") {
		cfg.OutputBitDepth = f.bits
	}
	if changed("chunk-frames") {
		cfg.ChunkFrames = f.chunkFrames
	}
	if changed("debug") {
		cfg.DebugEnabled = f.debug
	}

	if changed("format-id") {
		id, err := audio.ParseFormatID(f.formatID)
		if err != nil {
			return cfg, err
		}
		cfg.OutputFormatID = id
	}

	switch {
	case changed("file-type"):
		ft, err := audio.ParseFileType(f.fileType)
		if err != nil {
			return cfg, err
		}
		cfg.OutputFileType = ft
	default:
		if ft, ok := audio.FileTypeFromPath(output); ok {
			cfg.OutputFileType = ft
		}
	}

	return cfg, nil
}

func newProgressBar(w io.Writer, input string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(input),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

func printSummary(w io.Writer, cfg converter.Config, res converter.Result) {
	fmt.Fprintf(w, "%s -> %s\n", cfg.InputFilePath, cfg.OutputFilePath)
	fmt.Fprintf(w, "  input:  %s\n", res.Input)
	fmt.Fprintf(w, "  output: %s (%s)\n", res.Output, cfg.OutputFileType.Name())
	fmt.Fprintf(w, "  frames: %s, %s in %s\n",
		humanize.Comma(res.FramesWritten),
		humanize.Bytes(uint64(max(res.Bytes, 0))),
		res.Elapsed.Round(time.Millisecond),
	)
}
