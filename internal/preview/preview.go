// Package preview renders a finished mesh to an image on the CPU, standing
// in for the interactive viewport when the tools run headless.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/terrain-constructor/internal/logger"
	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/pkg/math"
)

var (
	ErrUnknownMode   = errors.New("unknown display mode")
	ErrUnknownFormat = errors.New("unknown image format")
)

// Mode selects how triangles are drawn.
type Mode int

const (
	ModeWireframe Mode = iota
	ModeFlat
	ModeSmooth
)

var modeNames = [...]string{"wireframe", "flat", "smooth"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode reads "wireframe", "flat" or "smooth".
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Format is an output image encoding. Its value is the file extension.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// ParseFormat reads "png", "webp" or "tga".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPNG, FormatWebP, FormatTGA:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options controls one render.
type Options struct {
	Size        int // output edge length in pixels
	Supersample int // render at Size*Supersample, then downscale
	Mode        Mode
	Yaw, Pitch  float32
	Material    Material
}

// DefaultOptions returns a 512px smooth-shaded render.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Mode:        ModeSmooth,
		Yaw:         0.6,
		Pitch:       0.6,
		Material:    DefaultMaterial(),
	}
}

// Render draws m into a square image framed by an orbit camera fitted to
// its bounds. Triangles touching non-finite vertices are skipped. A nil
// mesh renders the background only.
func Render(m *mesh.Mesh, opts Options) (*image.NRGBA, error) {
	if opts.Mode < ModeWireframe || opts.Mode > ModeSmooth {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(opts.Mode))
	}
	size := max(1, opts.Size)
	ss := max(1, opts.Supersample)
	renderSize := size * ss

	start := time.Now()
	fb := newFrameBuffer(renderSize, renderSize, background)

	if m != nil && len(m.Vertices) > 0 {
		cam := NewOrbitCamera(opts.Yaw, opts.Pitch)
		cam.FitToBounds(m.Bounds())
		viewProj := cam.ProjectionMatrix(1).Mul(cam.ViewMatrix())
		screen := project(m.Vertices, viewProj, renderSize, renderSize)

		switch opts.Mode {
		case ModeWireframe:
			lines := m.Wireframe()
			for i := 0; i+1 < len(lines); i += 2 {
				a, b := screen[lines[i]], screen[lines[i+1]]
				if a.ok && b.ok {
					drawLine(fb, a, b, ss, wireColor)
				}
			}
		default:
			drawTriangles(fb, m, screen, opts.Mode == ModeFlat, opts.Material)
		}
	}

	img := fb.image()
	if ss > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	logger.Named("preview").Debug("preview rendered",
		zap.Stringer("mode", opts.Mode),
		zap.Int("size", size),
		zap.Int("supersample", ss),
		zap.Duration("elapsed", time.Since(start)))

	return img, nil
}

func drawTriangles(fb *frameBuffer, m *mesh.Mesh, screen []screenVertex, flat bool, mat Material) {
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		p := [3]screenVertex{screen[tri[0]], screen[tri[1]], screen[tri[2]]}
		if !p[0].ok || !p[1].ok || !p[2].ok {
			continue
		}

		a := m.Vertices[tri[0]].Position()
		face := m.Vertices[tri[1]].Position().Sub(a).
			Cross(m.Vertices[tri[2]].Position().Sub(a)).Normalize()

		var n [3]math.Vec3
		for k, idx := range tri {
			n[k] = face
			if !flat {
				vn := m.Vertices[idx].Normal.XYZ()
				if vn.IsFinite() {
					n[k] = vn
				}
			}
		}
		rasterizeTriangle(fb, p, n, flat, mat)
	}
}

// Encode writes img in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatTGA:
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Save writes img to <dir>/<seed>.<ext> and returns the path.
func Save(dir string, seed int64, img image.Image, f Format) (string, error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return "", err
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("%d.%s", seed, f))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	err = writeClose(file, func(w io.Writer) error { return Encode(w, img, f) })
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", f, err)
	}

	return path, nil
}

// writeClose runs write on wc and closes it. A Close error is returned
// when write itself succeeded.
func writeClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	return write(wc)
}
