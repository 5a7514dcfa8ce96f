package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/averdu/dragfall/internal/fall"
)

var palette = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Yellow,
	asciigraph.Fuchsia,
	asciigraph.Aqua,
}

// RenderComparison plots every scenario curve on one graph, legend order
// matching scenario entry order.
func RenderComparison(series []fall.Series, width, height int) string {
	if len(series) == 0 {
		return "no curves to plot"
	}

	data := make([][]float64, len(series))
	legends := make([]string, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, sr := range series {
		data[i] = sr.Velocities
		legends[i] = sr.Label
		colors[i] = palette[i%len(palette)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("v(t) (m/s) over the sampling window"),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

// RenderSummary builds the per-scenario diagnostic panel: terminal
// velocity, final sampled velocity, and relative error per curve, with
// skipped scenarios called out.
func RenderSummary(report *fall.Report) string {
	var b strings.Builder

	for _, res := range report.Results {
		line := fmt.Sprintf("%s v_T=%.4f m/s  v(end)=%.4f m/s  rel err=%.4e",
			labelStyle.Render(res.Label), res.Terminal, res.FinalV, res.RelError)
		b.WriteString(valueStyle.Render(line))
		b.WriteString("\n")
	}
	for _, f := range report.Failures {
		b.WriteString(warnStyle.Render(fmt.Sprintf("skipped %s: %v", f.Label, f.Err)))
		b.WriteString("\n")
	}

	return b.String()
}
