// Package fingerprint renders a coarse color signature of a video's
// first decodable frame.
//
// The signature samples a fixed grid of pixels against a reference
// resolution and joins the colors into one canonical string, e.g.
// "#1A2B3C,#000000,...". Sampling geometry is pure; only frame
// decoding touches the filesystem, by piping a single frame out of
// ffmpeg as BMP.
package fingerprint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// ErrFrameRead reports that a video could not be opened or its first
// frame could not be decoded.
var ErrFrameRead = errors.New("first frame not readable")

const defaultFFmpegBinary = "ffmpeg"

// Options configures sampling geometry and the external decoder.
type Options struct {
	// Grid is the side length of the sample grid (Grid*Grid points).
	Grid int
	// VideoWidth and VideoHeight form the reference resolution the
	// sample coordinates are computed against.
	VideoWidth  int
	VideoHeight int
	// FFmpegBinary overrides the decoder executable, default "ffmpeg".
	FFmpegBinary string
	// DecodeTimeout bounds a single frame decode. Zero disables the bound.
	DecodeTimeout time.Duration
}

// Extractor samples a fixed pixel grid from first frames. Sample
// positions are computed once at construction, so the same extractor
// always reads the same coordinates.
type Extractor struct {
	positions []image.Point
	binary    string
	timeout   time.Duration
}

// NewExtractor builds an extractor for the given geometry. Point
// (i, j) sits at ((i+1)*W/(G+1), (j+1)*H/(G+1)), iterated row-major
// with j outer so the emitted order is fixed.
func NewExtractor(opts Options) *Extractor {
	grid := opts.Grid
	if grid < 1 {
		grid = 1
	}
	positions := make([]image.Point, 0, grid*grid)
	for j := 0; j < grid; j++ {
		for i := 0; i < grid; i++ {
			positions = append(positions, image.Point{
				X: (i + 1) * opts.VideoWidth / (grid + 1),
				Y: (j + 1) * opts.VideoHeight / (grid + 1),
			})
		}
	}

	binary := strings.TrimSpace(opts.FFmpegBinary)
	if binary == "" {
		binary = defaultFFmpegBinary
	}
	return &Extractor{positions: positions, binary: binary, timeout: opts.DecodeTimeout}
}

// Extract decodes the first frame of the video at path and renders its
// signature. Failures to open or decode the frame are reported as
// ErrFrameRead.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	frame, err := e.decodeFirstFrame(ctx, path)
	if err != nil {
		return "", err
	}
	return e.FromImage(frame), nil
}

func (e *Extractor) decodeFirstFrame(ctx context.Context, path string) (image.Image, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.binary,
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "bmp",
		"-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrFrameRead, detail)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: decoder produced no frame", ErrFrameRead)
	}

	frame, err := bmp.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame: %v", ErrFrameRead, err)
	}
	return frame, nil
}

// FromImage renders the signature for an already decoded frame. Sample
// points outside the frame bounds contribute "#000000" instead of
// failing the whole signature. The emitted channel order is always
// R, G, B regardless of the frame's native pixel layout.
func (e *Extractor) FromImage(frame image.Image) string {
	bounds := frame.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	parts := make([]string, 0, len(e.positions))
	for _, p := range e.positions {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			parts = append(parts, "#000000")
			continue
		}
		r, g, b, _ := frame.At(bounds.Min.X+p.X, bounds.Min.Y+p.Y).RGBA()
		parts = append(parts, fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
	}
	return strings.Join(parts, ",")
}

// Positions returns a copy of the sample coordinates in emission order.
func (e *Extractor) Positions() []image.Point {
	out := make([]image.Point, len(e.positions))
	copy(out, e.positions)
	return out
}
