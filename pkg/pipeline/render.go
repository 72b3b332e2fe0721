package pipeline

import (
	"context"
	"fmt"

	"github.com/archscope/archscope/pkg/viz"
)

// RenderImages rasterizes DOT source into the requested image formats.
// Textual formats in the options are ignored; those are served by the
// export stage.
func RenderImages(ctx context.Context, dot []byte, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.renderFormats() {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = viz.RenderSVG(ctx, string(dot))
		case FormatPNG:
			data, err = viz.RenderPNG(ctx, string(dot), opts.Scale)
		case FormatPDF:
			data, err = viz.RenderPDF(ctx, string(dot))
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
