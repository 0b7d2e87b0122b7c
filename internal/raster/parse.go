package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FormatError reports a missing or unusable header entry.
type FormatError struct {
	Key    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("raster header %s: %s", e.Key, e.Reason)
}

const maxLine = 64 << 20

// MaxCells caps ncols×nrows so a corrupt header cannot demand more memory
// than a global grid needs.
const MaxCells = 1 << 26

// Parse decodes an ESRI ASCII grid held in text.
func Parse(text string) (*Grid, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader decodes an ESRI ASCII grid. Header lines are "key value"
// pairs with a non-numeric key; the first other non-blank line starts the
// body. Body tokens that are non-numeric or equal to NODATA_value become
// absent cells. Rows beyond nrows and tokens beyond ncols are ignored;
// short rows leave their trailing cells absent.
func ParseReader(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	header := make(map[string]string)
	var (
		g     *Grid
		row   int
		first = true
	)
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if g == nil {
			if len(fields) == 2 && !isNumber(fields[0]) {
				header[strings.ToLower(fields[0])] = fields[1]
				continue
			}
			var err error
			if g, err = fromHeader(header); err != nil {
				return nil, err
			}
		}

		if row >= g.NRows {
			continue
		}
		for col, tok := range fields {
			if col >= g.NCols {
				break
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil || v == g.NoDataValue {
				continue
			}
			g.set(row, col, v)
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read raster: %w", err)
	}

	if g == nil {
		// Header only, no body rows.
		return fromHeader(header)
	}
	return g, nil
}

func fromHeader(h map[string]string) (*Grid, error) {
	ncols, err := headerInt(h, "ncols")
	if err != nil {
		return nil, err
	}
	nrows, err := headerInt(h, "nrows")
	if err != nil {
		return nil, err
	}
	if ncols > MaxCells/nrows {
		return nil, &FormatError{Key: "ncols", Reason: fmt.Sprintf("%d×%d grid exceeds %d cells", ncols, nrows, MaxCells)}
	}
	cellsize, err := headerFloat(h, "cellsize")
	if err != nil {
		return nil, err
	}
	if cellsize <= 0 {
		return nil, &FormatError{Key: "cellsize", Reason: "must be positive"}
	}
	nodata, err := headerFloat(h, "nodata_value")
	if err != nil {
		return nil, err
	}
	xll, err := corner(h, "xll", cellsize)
	if err != nil {
		return nil, err
	}
	yll, err := corner(h, "yll", cellsize)
	if err != nil {
		return nil, err
	}

	g := newGrid(ncols, nrows)
	g.CellSize = cellsize
	g.NoDataValue = nodata
	g.XLLCorner = xll
	g.YLLCorner = yll
	return g, nil
}

// corner resolves the lower-left corner for one axis from either the
// <axis>corner or <axis>center key. Exactly one must be present.
func corner(h map[string]string, axis string, cellsize float64) (float64, error) {
	_, hasCorner := h[axis+"corner"]
	_, hasCenter := h[axis+"center"]
	switch {
	case hasCorner && hasCenter:
		return 0, &FormatError{Key: axis + "corner", Reason: "both corner and center given"}
	case hasCenter:
		v, err := headerFloat(h, axis+"center")
		if err != nil {
			return 0, err
		}
		return v - cellsize*0.5, nil
	default:
		return headerFloat(h, axis+"corner")
	}
}

func headerFloat(h map[string]string, key string) (float64, error) {
	raw, ok := h[key]
	if !ok {
		return 0, &FormatError{Key: key, Reason: "missing"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Key: key, Reason: fmt.Sprintf("not a number: %q", raw)}
	}
	return v, nil
}

func headerInt(h map[string]string, key string) (int, error) {
	v, err := headerFloat(h, key)
	if err != nil {
		return 0, err
	}
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, &FormatError{Key: key, Reason: "must be a positive integer"}
	}
	return int(v), nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
