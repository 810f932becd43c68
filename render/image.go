package render

import (
	"bytes"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/tickforge/engine/external"
)

// ImageRenderer is a headful external.Renderer that paints each node as
// a filled circle on a fogleman/gg raster canvas and encodes the result
// as PNG on Frame. It covers the same node lifecycle as ASCIIRenderer
// but targets a raster image instead of a terminal.
type ImageRenderer struct {
	*nodeTable
	width, height int
	background    RGBPixel
}

// NewImageRenderer builds an ImageRenderer over a width x height canvas,
// cleared to background before each frame.
func NewImageRenderer(width, height int, background RGBPixel) *ImageRenderer {
	return &ImageRenderer{nodeTable: newNodeTable(), width: width, height: height, background: background}
}

// CreateNode implements external.Renderer.
func (r *ImageRenderer) CreateNode(kind string) external.NodeHandle { return r.create(kind) }

// UpdateNode implements external.Renderer.
func (r *ImageRenderer) UpdateNode(handle external.NodeHandle, state any) { r.update(handle, state) }

// DestroyNode implements external.Renderer.
func (r *ImageRenderer) DestroyNode(handle external.NodeHandle) { r.destroy(handle) }

// Frame rasterizes every live node onto the canvas and returns the
// frame encoded as PNG bytes.
func (r *ImageRenderer) Frame() ([]byte, error) {
	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB255(int(r.background.R), int(r.background.G), int(r.background.B))
	dc.Clear()

	for _, n := range r.snapshot() {
		s := n.state
		radius := (s.Size.X + s.Size.Y) / 4
		if radius <= 0 {
			radius = 1
		}
		dc.SetRGB255(int(s.Color.R), int(s.Color.G), int(s.Color.B))
		dc.DrawCircle(s.Position.X, s.Position.Y, radius)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ external.Renderer = (*ImageRenderer)(nil)
