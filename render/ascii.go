package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/tickforge/engine/external"
)

// asciiChars are the grayscale ramp characters, lightest to darkest,
// adapted unchanged from the reference ASCII renderer.
const asciiChars = " .,:;i1tfLCG08@"

const grayFactor = 255.0 / float64(len(asciiChars)-1)

func rgbToGray(p RGBPixel) uint8 {
	return uint8((float64(p.R) + float64(p.G) + float64(p.B)) / 3)
}

func grayToAscii(gray uint8) string {
	index := int(float64(gray) / grayFactor)
	return string(asciiChars[index])
}

func rgbToAnsi(p RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", p.R, p.G, p.B)
}

// renderPixelsToASCII converts a 2D pixel buffer to a colored ASCII
// string, sampled down to resolution columns/rows, exactly as the
// reference RenderToASCII does.
func renderPixelsToASCII(pixels [][]RGBPixel, resolution int) string {
	height := len(pixels)
	if height == 0 || resolution <= 0 {
		return ""
	}
	width := len(pixels[0])
	if width == 0 {
		return ""
	}
	stepX, stepY := float64(width)/float64(resolution), float64(height)/float64(resolution)
	var ascii strings.Builder
	for y := 0.0; y < float64(height-1); y += stepY {
		for x := 0.0; x < float64(width-1); x += stepX {
			i, j := int(math.Round(x)), int(math.Round(y))
			pixel := pixels[j][i]
			ansi := rgbToAnsi(pixel)
			ascii.WriteString(ansi + grayToAscii(rgbToGray(pixel)) + "\033[0m")
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

// ASCIIRenderer is a headful external.Renderer that paints each node as
// a filled rectangle onto a logical canvas, then samples that canvas
// down to a terminal-sized ASCII grid on Frame.
type ASCIIRenderer struct {
	*nodeTable
	width, height int
	resolution    int
}

// NewASCIIRenderer builds an ASCIIRenderer over a canvas of the given
// logical width/height, sampled to resolution characters per row on
// Frame.
func NewASCIIRenderer(width, height, resolution int) *ASCIIRenderer {
	return &ASCIIRenderer{nodeTable: newNodeTable(), width: width, height: height, resolution: resolution}
}

// CreateNode implements external.Renderer.
func (r *ASCIIRenderer) CreateNode(kind string) external.NodeHandle { return r.create(kind) }

// UpdateNode implements external.Renderer.
func (r *ASCIIRenderer) UpdateNode(handle external.NodeHandle, state any) { r.update(handle, state) }

// DestroyNode implements external.Renderer.
func (r *ASCIIRenderer) DestroyNode(handle external.NodeHandle) { r.destroy(handle) }

// Frame rasterizes every live node onto the logical canvas and returns
// the resulting ANSI-colored ASCII string.
func (r *ASCIIRenderer) Frame() string {
	pixels := make([][]RGBPixel, r.height)
	for y := range pixels {
		pixels[y] = make([]RGBPixel, r.width)
	}
	for _, n := range r.snapshot() {
		paintRect(pixels, n.state)
	}
	return renderPixelsToASCII(pixels, r.resolution)
}

func paintRect(pixels [][]RGBPixel, state NodeState) {
	height := len(pixels)
	if height == 0 {
		return
	}
	width := len(pixels[0])
	x0 := int(state.Position.X - state.Size.X/2)
	y0 := int(state.Position.Y - state.Size.Y/2)
	x1 := int(state.Position.X + state.Size.X/2)
	y1 := int(state.Position.Y + state.Size.Y/2)
	for y := max(0, y0); y < min(height, y1); y++ {
		for x := max(0, x0); x < min(width, x1); x++ {
			pixels[y][x] = state.Color
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var _ external.Renderer = (*ASCIIRenderer)(nil)
