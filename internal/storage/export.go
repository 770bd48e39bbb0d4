package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/isinglab/internal/sim"
)

// ExportData bundles a run's metadata with its records for JSON export.
type ExportData struct {
	RunMetadata
	Records []sim.Record `json:"records"`
}

// ExportJSON writes a saved run as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadRecords(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Records: records})
}

// ExportCSV writes a saved run's records as CSV.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	records, err := s.LoadRecords(runID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatFloat(r.Temperature, 'f', 6, 64),
			strconv.FormatFloat(r.Energy, 'f', 6, 64),
			strconv.FormatFloat(r.AbsMagnetization, 'f', 6, 64),
			strconv.FormatFloat(r.MeanSpin, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
