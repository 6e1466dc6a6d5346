// Package chart renders plain SVG bar and line charts for experiment
// metrics, a direct port of the reference runner's _save_bar_svg/
// _save_line_svg fallback (used there when matplotlib is unavailable — here
// it is the only renderer, since no plotting library appears anywhere in
// the example corpus this module was built from).
package chart

import (
	"fmt"
	"os"
	"strings"
)

const (
	width  = 900
	height = 420
	margin = 50
)

// Bar writes a bar chart of labels/values to path as SVG.
func Bar(labels []string, values []float64, title, path string) error {
	maxV := 1.0
	if len(values) > 0 {
		maxV = values[0]
		for _, v := range values[1:] {
			if v > maxV {
				maxV = v
			}
		}
		if maxV == 0 {
			maxV = 1.0
		}
	}

	n := len(values)
	if n == 0 {
		n = 1
	}
	barW := float64(width-2*margin) / float64(n) * 0.7
	gap := float64(width-2*margin) / float64(n) * 0.3

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="%d" y="25" text-anchor="middle" font-size="16">%s</text>`+"\n", width/2, escape(title))
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n", margin, height-margin, width-margin, height-margin)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n", margin, margin, margin, height-margin)

	x := float64(margin) + gap/2
	for i, v := range values {
		bh := 0.0
		if maxV != 0 {
			bh = (v / maxV) * float64(height-2*margin)
		}
		y := float64(height-margin) - bh
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#4682B4"/>`+"\n", x, y, barW, bh)
		fmt.Fprintf(&b, `<text x="%.2f" y="%d" text-anchor="middle" font-size="10">%s</text>`+"\n", x+barW/2, height-margin+16, escape(labels[i]))
		labelY := y - 4
		if labelY < 14 {
			labelY = 14
		}
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" font-size="9">%.1f</text>`+"\n", x+barW/2, labelY, v)
		x += barW + gap
	}
	b.WriteString("</svg>")

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Line writes a line chart of labels/values to path as SVG.
func Line(labels []string, values []float64, title, path string) error {
	maxV, minV := 1.0, 0.0
	if len(values) > 0 {
		maxV, minV = values[0], values[0]
		for _, v := range values[1:] {
			if v > maxV {
				maxV = v
			}
			if v < minV {
				minV = v
			}
		}
	}
	span := maxV - minV
	if span < 1e-9 {
		span = 1e-9
	}

	n := len(values)
	step := float64(width-2*margin)
	if n > 1 {
		step /= float64(n - 1)
	}

	yOf := func(v float64) float64 {
		return float64(height-margin) - ((v-minV)/span)*float64(height-2*margin)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="%d" y="25" text-anchor="middle" font-size="16">%s</text>`+"\n", width/2, escape(title))
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n", margin, height-margin, width-margin, height-margin)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n", margin, margin, margin, height-margin)

	type point struct{ x, y float64 }
	points := make([]point, len(values))
	for i, v := range values {
		points[i] = point{x: float64(margin) + float64(i)*step, y: yOf(v)}
	}

	if len(points) > 0 {
		coords := make([]string, len(points))
		for i, p := range points {
			coords[i] = fmt.Sprintf("%.2f,%.2f", p.x, p.y)
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#d2691e" stroke-width="2"/>`+"\n", strings.Join(coords, " "))
	}

	for i, p := range points {
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="4" fill="#d2691e"/>`+"\n", p.x, p.y)
		fmt.Fprintf(&b, `<text x="%.2f" y="%d" text-anchor="middle" font-size="10">%s</text>`+"\n", p.x, height-margin+16, escape(labels[i]))
		labelY := p.y - 6
		if labelY < 14 {
			labelY = 14
		}
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" font-size="9">%.1f</text>`+"\n", p.x, labelY, values[i])
	}
	b.WriteString("</svg>")

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
