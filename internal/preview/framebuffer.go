package preview

import (
	"image"
	"math"
)

// frameBuffer holds the render target as flat slices.
type frameBuffer struct {
	width  int
	height int
	color  []uint8   // RGBA interleaved
	depth  []float32 // NDC depth per pixel, smaller is closer
}

func newFrameBuffer(w, h int, bg [3]uint8) *frameBuffer {
	fb := &frameBuffer{
		width:  w,
		height: h,
		color:  make([]uint8, w*h*4),
		depth:  make([]float32, w*h),
	}
	for i := range fb.depth {
		fb.depth[i] = float32(math.Inf(1))
		fb.color[4*i] = bg[0]
		fb.color[4*i+1] = bg[1]
		fb.color[4*i+2] = bg[2]
		fb.color[4*i+3] = 255
	}
	return fb
}

func (fb *frameBuffer) set(x, y int, c [3]uint8) {
	i := (y*fb.width + x) * 4
	fb.color[i] = c[0]
	fb.color[i+1] = c[1]
	fb.color[i+2] = c[2]
}

func (fb *frameBuffer) image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.color)
	return img
}
