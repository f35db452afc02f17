// SPDX-License-Identifier: EPL-2.0

// Package converter converts audio files between containers, sample rates,
// channel layouts and bit depths.
//
// A conversion runs as a small state machine:
//
//	Idle → Negotiating → Looping → Finalizing → Done
//	                  ↘         ↘            ↘
//	                            Failed
//
// While negotiating, the input is opened, a linear PCM intermediate format is
// derived from the Config and the whole path is checked against the
// registered encoders. The output file is created only after that succeeds.
// The loop then moves fixed size chunks of intermediate frames from the
// SourceReader to the DestinationWriter until the input ends.
//
// Every error returned by Convert is a *Error naming the failed stage. Kind
// maps it to one of the audio.Err* sentinels:
//
//	res, err := converter.New(cfg).Convert(ctx)
//	switch converter.Kind(err) {
//	case nil:
//	case audio.ErrCancelled:
//		// res.FramesWritten frames were kept
//	case audio.ErrIncompatibleFormats:
//		// nothing was created
//	}
//
// A failed or cancelled conversion still finalizes what it wrote, so the
// partial output is a valid file.
package converter
