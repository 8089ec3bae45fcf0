package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/stylint/pkg/analysis"
)

// JSONRenderer writes the analysis report as a single JSON document.
type JSONRenderer struct {
	opts Options
	out  io.Writer
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts, out: opts.Writer}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush JSON: %w", err)
	}
	return nil
}
