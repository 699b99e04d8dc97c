package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ercot-lmp-viewer/internal/model"
)

// Header is the exported column order.
var Header = []string{"timestamp", "market", "node", "price"}

// WriteCSV writes t in Rows() order: by market, then timestamp.
func WriteCSV(w io.Writer, t *model.ResultTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range t.Rows() {
		row := []string{
			fmtTime(r.Timestamp),
			string(r.Market),
			r.Node,
			fmtFloat(r.Price),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes t to path, creating parent directories.
func WriteCSVFile(path string, t *model.ResultTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) ([]model.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("unexpected header %q, want %q", strings.Join(header, ","), strings.Join(Header, ","))
	}

	var out []model.PricePoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp %q: %w", line, rec[0], err)
		}
		m, err := model.ParseMarket(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		price, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q: %w", line, rec[3], err)
		}
		out = append(out, model.PricePoint{
			Timestamp: ts,
			Market:    m,
			Node:      rec[2],
			Price:     price,
		})
	}
	return out, nil
}

// FileName is the suggested download name,
// e.g. "HB_HOUSTON_DAM_LMP_2024-01-01_to_2024-01-02.csv".
func FileName(t *model.ResultTable) string {
	return fmt.Sprintf("%s_%s_LMP_%s_to_%s.csv",
		sanitize(t.Node),
		t.Selection,
		t.Range.Start().Format(model.DateLayout),
		t.Range.End().Format(model.DateLayout),
	)
}

// sanitize keeps node identifiers safe for use in a file name.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

func fmtTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// fmtFloat uses the shortest representation that parses back to the same value.
func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
