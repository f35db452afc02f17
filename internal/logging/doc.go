// SPDX-License-Identifier: EPL-2.0

// Package logging assembles the slog loggers used by the converter and the
// command line tool.
//
// It owns the console and JSON handlers and level parsing, and provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
