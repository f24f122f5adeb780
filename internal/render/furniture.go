package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// Colorbar geometry, right of the map area.
const (
	colorbarWidth  = 28.0
	colorbarGap    = 45.0
	colorbarTicks  = 6
	tickLength     = 6.0
	colorbarInsetY = 30.0
)

// Logo anchor fractions, carried over from the historical figure layout
// (banner at the lower left, institute logo at the upper left).
const (
	logoAnchorX   = 0.13
	bannerAnchorY = 0.88
	fmiAnchorY    = 0.08
)

// drawTitle writes the two-line figure title above the map area.
func (r *Renderer) drawTitle(dc *gg.Context, area mapArea, description string, window domain.TimeWindow) {
	cx := area.x + area.w/2
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(r.titleFace)
	dc.DrawStringAnchored(fmt.Sprintf("L3 merged product of %s", description), cx, 38, 0.5, 0.5)
	dc.SetFontFace(r.labelFace)
	dc.DrawStringAnchored(
		fmt.Sprintf("First timestamp: %s   Last timestamp: %s", window.Start, window.Stop),
		cx, 78, 0.5, 0.5,
	)
}

// drawColorbar renders the vertical colorbar with tick values and a
// rotated "description [unit]" label.
func (r *Renderer) drawColorbar(dc *gg.Context, area mapArea, cmap Colormap, vmin, vmax float64, label string) {
	x := area.x + area.w + colorbarGap
	y := area.y + colorbarInsetY
	h := area.h - 2*colorbarInsetY

	// Gradient, one thin band per pixel row, high values on top.
	for py := 0.0; py < h; py++ {
		t := 1 - py/h
		dc.SetColor(cmap.At(t))
		dc.DrawRectangle(x, y+py, colorbarWidth, 1.5)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, colorbarWidth, h)
	dc.Stroke()

	dc.SetFontFace(r.tickFace)
	for i := 0; i < colorbarTicks; i++ {
		t := float64(i) / float64(colorbarTicks-1)
		v := vmin + t*(vmax-vmin)
		py := y + (1-t)*h
		dc.DrawLine(x+colorbarWidth, py, x+colorbarWidth+tickLength, py)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.3g", v), x+colorbarWidth+tickLength+4, py, 0, 0.4)
	}

	dc.SetFontFace(r.labelFace)
	lx := x + colorbarWidth + 95
	ly := y + h/2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), lx, ly)
	dc.DrawStringAnchored(label, lx, ly, 0.5, 0.5)
	dc.Pop()
}

// drawLogos places the banner and institute logos at their fixed anchors.
func drawLogos(dc *gg.Context, banner, fmi image.Image) {
	x := int(logoAnchorX * canvasW)
	dc.DrawImage(banner, x, int(bannerAnchorY*canvasH)-banner.Bounds().Dy())
	dc.DrawImage(fmi, x, int(fmiAnchorY*canvasH))
}
