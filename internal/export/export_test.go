package export

import (
	"context"
	"strings"
	"testing"

	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/physics"
)

func sampleHistory(t *testing.T) []experiment.Sample {
	t.Helper()
	e := experiment.New(experiment.Config{
		Params:      physics.DefaultParameters(),
		Ticks:       30,
		SampleEvery: 10,
	})
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res.Samples
}

func TestWriteCSV(t *testing.T) {
	samples := sampleHistory(t)

	var sb strings.Builder
	if err := WriteCSV(&sb, samples); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != len(samples)+1 {
		t.Fatalf("expected %d lines, got %d", len(samples)+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,output_voltage") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	cols := strings.Split(lines[1], ",")
	if len(cols) != len(physics.FieldNames)+1 {
		t.Errorf("expected %d columns, got %d", len(physics.FieldNames)+1, len(cols))
	}
}

func TestSeriesSVG(t *testing.T) {
	samples := sampleHistory(t)

	svg := SeriesSVG(samples, "output_voltage")
	if !strings.Contains(svg, "<polyline") {
		t.Error("chart should contain a polyline")
	}
	if !strings.Contains(svg, "output_voltage") {
		t.Error("chart should label the field")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("chart should be closed")
	}
}

func TestSeriesSVGUnknownField(t *testing.T) {
	samples := sampleHistory(t)
	svg := SeriesSVG(samples, "flux_capacitance")
	if strings.Contains(svg, "<polyline") {
		t.Error("unknown field should produce an empty chart")
	}
}
