// Package plot provides format conversion shared by the output sinks.
//
// The [layout], [styles], and [sink] subpackages hold the actual plotting
// pipeline; this package contains the SVG-to-PDF/PNG converters used by
// [sink.RenderPDF] and [sink.RenderPNG].
//
// [layout]: github.com/murzabaevb/levelplot/pkg/plot/layout
// [styles]: github.com/murzabaevb/levelplot/pkg/plot/styles
// [sink]: github.com/murzabaevb/levelplot/pkg/plot/sink
package plot

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG with the given scale factor. It prefers
// rsvg-convert and falls back to a headless Chrome screenshot when librsvg
// is not installed. Scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err == nil {
		return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
	}
	return chromePNG(svg)
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}

// chromePNG screenshots the SVG in headless Chrome. The SVG is loaded as a
// base64 data URI so no temp file is needed.
func chromePNG(svg []byte) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &shot, chromedp.ByQuery),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("png export: neither librsvg nor headless Chrome available: %w", err)
	}
	if len(shot) == 0 {
		return nil, fmt.Errorf("png export: empty screenshot")
	}
	return shot, nil
}
