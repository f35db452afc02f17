// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/formats"
	"github.com/ik5/audconv/internal/logging"
)

// Progress is reported after every chunk.
type Progress struct {
	JobID         uuid.UUID
	FramesWritten int64
	// TotalFrames is -1 when the input does not record its length.
	TotalFrames int64
}

// Result describes a finished conversion.
type Result struct {
	OK            bool
	JobID         uuid.UUID
	State         State
	FramesRead    int64
	FramesWritten int64
	Input         audio.Format
	Intermediate  audio.Format
	Output        audio.Format
	// Bytes is the size of the output file once finalized.
	Bytes   int64
	Elapsed time.Duration
}

// Converter runs conversions for one Config. A Converter may be reused, but
// not from several goroutines at once.
type Converter struct {
	cfg      Config
	registry *audio.Registry
	codec    Codec
	logger   *slog.Logger
	progress func(Progress)
}

// Option customizes a Converter.
type Option func(*Converter)

// WithRegistry sets the decoders and encoders used. The default holds every
// bundled container.
func WithRegistry(r *audio.Registry) Option {
	return func(c *Converter) { c.registry = r }
}

// WithCodec replaces the decode and encode steps.
func WithCodec(codec Codec) Option {
	return func(c *Converter) { c.codec = codec }
}

// WithLogger sets the logger; the default depends on Config.DebugEnabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithProgress registers fn to be called after every chunk.
func WithProgress(fn func(Progress)) Option {
	return func(c *Converter) { c.progress = fn }
}

// New creates a Converter. cfg is copied.
func New(cfg Config, opts ...Option) *Converter {
	c := &Converter{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = formats.NewRegistry()
	}
	if c.codec == nil {
		c.codec = RegistryCodec{Registry: c.registry}
	}
	if c.logger == nil {
		c.logger = defaultLogger(cfg.DebugEnabled)
	}

	return c
}

func defaultLogger(debug bool) *slog.Logger {
	if !debug {
		return logging.NewNop()
	}

	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: os.Stderr})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// Config returns the configuration the Converter was built with.
func (c *Converter) Config() Config { return c.cfg }

// Convert runs the conversion. Result.OK is true only when every frame was
// written and the output container was committed. On failure the error is a
// *Error and Kind classifies it.
func (c *Converter) Convert(ctx context.Context) (res Result, err error) {
	started := time.Now()
	job := newJob(c.logger.With("component", "converter"))

	defer func() {
		if rerr := job.release(); rerr != nil {
			job.logger.Warn("releasing input", "error", rerr)
		}

		res.JobID = job.ID
		res.State = job.State
		res.FramesRead = job.FramesRead
		res.FramesWritten = job.FramesWritten
		res.Intermediate = job.Intermediate
		res.Elapsed = time.Since(started)
	}()

	if err := c.cfg.Validate(); err != nil {
		return res, job.fail("validate", err)
	}

	job.transition(StateNegotiating)

	reader, err := OpenReader(c.cfg.InputFilePath, c.registry)
	if err != nil {
		return res, job.fail("open", err)
	}
	job.reader = reader
	res.Input = reader.NativeFormat()

	intermediate, err := Negotiator{Registry: c.registry}.Negotiate(reader.NativeFormat(), c.cfg.OutputParams())
	if err != nil {
		return res, job.fail("negotiate", err)
	}
	job.Intermediate = intermediate

	if err := reader.SetClientFormat(intermediate, c.codec); err != nil {
		return res, job.fail("set client format", err)
	}
	job.TotalFrames = reader.ClientFrames()

	writer, err := CreateWriter(c.cfg.OutputFilePath, c.cfg.Target(), intermediate, c.codec)
	if err != nil {
		return res, job.fail("create", err)
	}
	job.writer = writer
	res.Output = writer.Format()

	job.logger.Debug("negotiated",
		"input", c.cfg.InputFilePath,
		"output", c.cfg.OutputFilePath,
		"format", reader.NativeFormat().String(),
		"intermediate", intermediate.String(),
		"total_frames", job.TotalFrames,
	)

	job.transition(StateLooping)

	if err := c.loop(ctx, job); err != nil {
		// Best effort: keep what was written a well-formed container
		if ferr := writer.Finalize(); ferr != nil {
			err = errors.Join(err, ferr)
		}
		res.Bytes = writer.Bytes()
		return res, job.fail("convert", err)
	}

	job.transition(StateFinalizing)

	if err := writer.Finalize(); err != nil {
		res.Bytes = writer.Bytes()
		return res, job.fail("finalize", err)
	}
	res.Bytes = writer.Bytes()

	job.transition(StateDone)
	res.OK = true

	job.logger.Info("conversion finished",
		"frames", job.FramesWritten,
		"chunks", job.Chunks,
		"output", c.cfg.OutputFilePath,
	)

	return res, nil
}

// loop moves chunks from the reader to the writer until the input ends.
func (c *Converter) loop(ctx context.Context, job *Job) error {
	chunk := NewChunk(job.Intermediate, c.cfg.ChunkFrames)
	sampler := logging.NewProgressSampler(10)

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w after %d frames: %w", audio.ErrCancelled, job.FramesWritten, err)
		}

		frames, eos, err := job.reader.ReadFrames(chunk)
		if err != nil {
			return err
		}
		job.FramesRead += int64(frames)

		if frames > 0 {
			if err := job.writer.WriteFrames(chunk, frames); err != nil {
				return err
			}
			job.FramesWritten += int64(frames)
			job.Chunks++
		}

		job.logger.Debug("chunk", "frames", frames, "total_frames", job.FramesWritten, "eos", eos)
		if sampler.ShouldLog(job.Percent()) {
			job.logger.Info("progress", "percent", job.Percent(), "frames", job.FramesWritten)
		}

		if c.progress != nil {
			c.progress(Progress{JobID: job.ID, FramesWritten: job.FramesWritten, TotalFrames: job.TotalFrames})
		}

		if eos {
			return nil
		}
	}
}
