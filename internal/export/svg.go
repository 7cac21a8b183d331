// Package export renders canvas snapshots and recorded series as SVG, for
// embedding a frame or a chart outside the terminal.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/physlab/internal/canvas"
)

// CanvasToSVG redraws a braille canvas snapshot as SVG dots.
func CanvasToSVG(c *canvas.Canvas, scale float64) string {
	if c == nil {
		return ""
	}
	w, h := c.Size()
	width := float64(w) * scale
	height := float64(h) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	r := scale * 0.4
	for _, dot := range c.Dots() {
		cx := float64(dot[0])*scale + scale/2
		cy := float64(dot[1])*scale + scale/2
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots a recorded scalar series as a polyline.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}
	min, max := series[0], series[0]
	for _, v := range series {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, width, height, width, height, strokeColor))

	pad := 8.0
	for i, v := range series {
		x := pad + float64(i)/float64(len(series)-1)*(float64(width)-2*pad)
		y := float64(height) - pad - (v-min)/span*(float64(height)-2*pad)
		sb.WriteString(fmt.Sprintf("%.1f,%.1f ", x, y))
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// WriteFile saves an SVG document to path.
func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
