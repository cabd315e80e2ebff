package pointset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chromaplane/pkg/search"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// WritePoints encodes pts as a JSON point file.
func WritePoints(w io.Writer, pts []udg.Point) error {
	out := pointFile{Points: make([][]float64, len(pts))}
	for i, p := range pts {
		out.Points[i] = []float64{p.X, p.Y}
	}
	return encode(w, out)
}

// ExportPoints writes pts to a JSON point file at path.
func ExportPoints(path string, pts []udg.Point) error {
	return writeFile(path, func(w io.Writer) error { return WritePoints(w, pts) })
}

// WriteRecords encodes records as an indented JSON array. Nil encodes as [].
func WriteRecords(w io.Writer, records []search.Record) error {
	if records == nil {
		records = []search.Record{}
	}
	return encode(w, records)
}

// ExportRecords writes records to path.
func ExportRecords(path string, records []search.Record) error {
	return writeFile(path, func(w io.Writer) error { return WriteRecords(w, records) })
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
