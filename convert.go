// SPDX-License-Identifier: EPL-2.0

package audconv

import (
	"context"

	"github.com/ik5/audconv/converter"
	"github.com/ik5/audconv/formats"
)

// Convert converts cfg.InputFilePath into cfg.OutputFilePath with every
// bundled container available. The bool is true only when the output was
// fully written and committed; the error says why it was not.
//
// Use the converter package directly for progress reporting, logging or a
// custom codec.
func Convert(ctx context.Context, cfg converter.Config) (bool, error) {
	res, err := converter.New(cfg, converter.WithRegistry(formats.NewRegistry())).Convert(ctx)
	if err != nil {
		return false, err
	}

	return res.OK, nil
}

// Inspect reports the container, native format and length of the file at
// path.
func Inspect(path string) (converter.Info, error) {
	return converter.Inspect(path, formats.NewRegistry())
}
