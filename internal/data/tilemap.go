package data

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Tile is one map cell: the row and column of the tile sheet it shows.
type Tile struct {
	Row, Col int
}

// ParseTileMap reads rows lines of cols comma-separated two-digit codes. The
// first digit of a code is the sheet row, the second the sheet column. Extra
// lines after the last row are ignored.
func ParseTileMap(r io.Reader, cols, rows int) ([][]Tile, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("tile map size %dx%d", cols, rows)
	}
	out := make([][]Tile, 0, rows)
	sc := bufio.NewScanner(r)
	line := 0
	for len(out) < rows && sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		codes := strings.Split(strings.TrimSuffix(text, ","), ",")
		if len(codes) != cols {
			return nil, fmt.Errorf("tile map line %d: %d codes, want %d", line, len(codes), cols)
		}
		row := make([]Tile, cols)
		for x, code := range codes {
			code = strings.TrimSpace(code)
			if len(code) != 2 || !isDigit(code[0]) || !isDigit(code[1]) {
				return nil, fmt.Errorf("tile map line %d col %d: bad code %q", line, x+1, code)
			}
			row[x] = Tile{Row: int(code[0] - '0'), Col: int(code[1] - '0')}
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tile map: %w", err)
	}
	if len(out) < rows {
		return nil, fmt.Errorf("tile map has %d rows, want %d", len(out), rows)
	}
	return out, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
