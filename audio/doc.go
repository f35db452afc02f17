// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream model shared by every decoder, encoder
// and converter stage.
//
// This package contains:
//   - Format, the description of one stream (rate, channels, depth, codec tag, flags)
//   - FileType and magic-byte detection for supported containers
//   - Source, the pull interface decoders expose
//   - Sink and Encoder, the write side of a container
//   - Resampler and ChannelMixer for rate and channel conversion
//   - Registry mapping file types to decoders and encoders
//   - the sentinel error taxonomy used across the module
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    Format() Format
//	    ReadSamples(dst []float64) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float64 values written, not frames.
// Samples are interleaved and normalized to [-1.0, 1.0). Integer PCM up to
// 32 bits survives the round trip through float64 without loss.
//
// # Formats
//
// A Format is a value. DeriveLinearPCM builds the signed, packed integer PCM
// description used as the working format of a conversion:
//
//	f, err := audio.DeriveLinearPCM(44100, 2, 16)
//	// f.BytesPerFrame == 4
//
// Compressed formats carry a FormatID and zero byte sizes.
//
// # Channel Mixing
//
//	stereo := audio.NewChannelMixer(source, 2)
//
// Downmixing to one channel averages, upmixing from one channel duplicates,
// other widenings repeat channels cyclically and narrowings fold channel j
// into j%N.
//
// # Registry
//
//	registry := audio.NewRegistry()
//	registry.Register(audio.FileTypeWAVE, wav.Decoder{})
//	registry.RegisterEncoder(audio.FileTypeWAVE, wav.Encoder{})
//	decoder, _ := registry.Get(audio.FileTypeWAVE)
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Everything else is
// wrapped around one of the Err* sentinels so callers can use errors.Is:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process buf[:n] first
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
