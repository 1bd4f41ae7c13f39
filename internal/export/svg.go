package export

import (
	"fmt"
	"strings"

	"github.com/elverum/plasmalab/internal/experiment"
)

const (
	svgWidth  = 800.0
	svgHeight = 400.0
	svgMargin = 40.0
)

// SeriesSVG renders one result field of a sampled history as an SVG
// line chart. Unknown field names produce an empty chart body.
func SeriesSVG(samples []experiment.Sample, field string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, svgHeight, svgWidth, svgHeight))

	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v, ok := s.Results.Fields()[field]; ok {
			values = append(values, v)
		}
	}

	if len(values) > 1 {
		min, max := values[0], values[0]
		for _, v := range values {
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

		plotW := svgWidth - 2*svgMargin
		plotH := svgHeight - 2*svgMargin

		points := make([]string, len(values))
		for i, v := range values {
			x := svgMargin + plotW*float64(i)/float64(len(values)-1)
			y := svgMargin + plotH*(1-(v-min)/span)
			points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		}

		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="#49e0b3" stroke-width="1.5" points="%s"/>
`, strings.Join(points, " ")))
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" fill="#888" font-family="monospace" font-size="12">%s</text>
`, svgMargin, svgMargin-10, field))
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" fill="#555" font-family="monospace" font-size="10">max %.4g</text>
`, svgWidth-svgMargin-100, svgMargin, max))
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" fill="#555" font-family="monospace" font-size="10">min %.4g</text>
`, svgWidth-svgMargin-100, svgHeight-svgMargin, min))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
