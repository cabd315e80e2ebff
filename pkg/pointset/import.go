package pointset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/search"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

type pointFile struct {
	Points [][]float64 `json:"points"`
}

// ReadPoints decodes a JSON or plain-text point set from r.
func ReadPoints(r io.Reader) ([]udg.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeJSON(trimmed)
	}
	return decodeText(data)
}

// ImportPoints reads the point file at path.
func ImportPoints(path string) ([]udg.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cperrors.Wrap(cperrors.ErrCodeFileNotFound, err, "point file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pts, err := ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

func decodeJSON(data []byte) ([]udg.Point, error) {
	var pf pointFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, cperrors.Wrap(cperrors.ErrCodeInvalidFormat, err, "decode json points")
	}
	pts := make([]udg.Point, len(pf.Points))
	for i, xy := range pf.Points {
		if len(xy) != 2 {
			return nil, cperrors.New(cperrors.ErrCodeInvalidFormat, "point %d: want 2 coordinates, got %d", i, len(xy))
		}
		pts[i] = udg.Pt(xy[0], xy[1])
	}
	return pts, nil
}

func decodeText(data []byte) ([]udg.Point, error) {
	var pts []udg.Point
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, cperrors.New(cperrors.ErrCodeInvalidFormat, "line %d: want 2 coordinates, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, cperrors.Wrap(cperrors.ErrCodeInvalidFormat, err, "line %d: x coordinate", line)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, cperrors.Wrap(cperrors.ErrCodeInvalidFormat, err, "line %d: y coordinate", line)
		}
		pts = append(pts, udg.Pt(x, y))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if pts == nil {
		pts = []udg.Point{}
	}
	return pts, nil
}

// ReadRecords decodes a JSON array of search records.
func ReadRecords(r io.Reader) ([]search.Record, error) {
	var recs []search.Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, cperrors.Wrap(cperrors.ErrCodeInvalidFormat, err, "decode records")
	}
	return recs, nil
}
