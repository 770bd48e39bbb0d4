package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/isinglab/internal/sim"
)

// SeriesToSVG renders one observable of a recorded schedule as an SVG line
// chart, temperature on the x axis. value selects the observable per
// record. Returns "" for fewer than two records.
func SeriesToSVG(records []sim.Record, value func(sim.Record) float64, width, height int, strokeColor string) string {
	if len(records) < 2 {
		return ""
	}

	minX, maxX := records[0].Temperature, records[0].Temperature
	minY, maxY := value(records[0]), value(records[0])
	for _, r := range records {
		v := value(r)
		if r.Temperature < minX {
			minX = r.Temperature
		}
		if r.Temperature > maxX {
			maxX = r.Temperature
		}
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, r := range records {
		x := (r.Temperature - minX) / rangeX * float64(width)
		y := float64(height) - (value(r)-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
