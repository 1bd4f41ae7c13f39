// Package export renders run histories to CSV and SVG.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/physics"
)

// WriteCSV writes a sampled history as CSV: one row per sample, tick
// first, then every result field in stable order.
func WriteCSV(w io.Writer, samples []experiment.Sample) error {
	cw := csv.NewWriter(w)

	header := append([]string{"tick"}, physics.FieldNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, s := range samples {
		fields := s.Results.Fields()
		row[0] = strconv.FormatUint(s.Tick, 10)
		for i, name := range physics.FieldNames {
			row[i+1] = strconv.FormatFloat(fields[name], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
