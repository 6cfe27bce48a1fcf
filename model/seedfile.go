package model

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ParsePlaintext reads a seed in the plaintext Life format.
//
// Lines starting with '!' are comments. 'O', '*', '+', 'X' and '1' mark live cells;
// '.', '0', '-' and spaces mark dead cells. Rows shorter than the widest row are
// padded with dead cells.
func ParsePlaintext(r io.Reader) (*Grid, error) {
	var (
		rows    [][]bool
		cols    int
		lineNum int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "!") {
			continue
		}

		row := make([]bool, 0, len(line))
		for i, ch := range line {
			switch ch {
			case 'O', '*', '+', 'X', '1':
				row = append(row, true)
			case '.', '0', '-', ' ':
				row = append(row, false)
			default:
				return nil, errors.Errorf("[ParsePlaintext] unexpected character %q at line %d, column %d", ch, lineNum, i+1)
			}
		}
		rows = append(rows, row)
		cols = max(cols, len(row))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParsePlaintext] failed to read seed")
	}

	// trailing blank lines carry no cells
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 || cols == 0 {
		return nil, errors.Wrap(ErrInvalidSeed, "[ParsePlaintext] seed has no cells")
	}

	g, err := NewGrid(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		copy(g.cells[r], row)
	}
	return g, nil
}

// LoadSeedFile reads a plaintext seed from disk
func LoadSeedFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadSeedFile] failed to open file: %+v", path)
	}
	defer f.Close()

	g, err := ParsePlaintext(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "[LoadSeedFile] %s", path)
	}
	return g, nil
}
