// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/formats"
	"github.com/ik5/audconv/internal/config"
	"github.com/ik5/audconv/internal/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.File
	configErr  error

	registryOnce sync.Once
	registry     *audio.Registry
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (config.File, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(strings.TrimSpace(c.flags.config))
	})
	return c.config, c.configErr
}

func (c *commandContext) formatRegistry() *audio.Registry {
	c.registryOnce.Do(func() {
		c.registry = formats.NewRegistry()
	})
	return c.registry
}

// logger writes to w. Flags win over the preset; debug forces debug level.
func (c *commandContext) logger(w io.Writer, debug bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	level := firstNonEmpty(c.flags.logLevel, cfg.Logging.Level)
	if debug {
		level = "debug"
	}

	format := c.flags.logFormat
	if format == "" || format == "auto" {
		format = cfg.Logging.Format
	}
	if format == "" || format == "auto" {
		format = "json"
		if isTerminal(w) {
			format = "console"
		}
	}

	return logging.New(logging.Options{Level: level, Format: format, Writer: w})
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
