// Package ioref reads CATH reference tables that map classification codes
// to names.
package ioref

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/cathapult/cathapult/pkg/annot"
	"github.com/gnames/gn"
)

const (
	sfIDColumn   = "# CATH_ID"
	sfNameColumn = "NAME"
)

// Load reads the names table and the superfamily list into an annotator
// that prefers the names table. A missing file is an error when required
// is true, otherwise it is skipped with a warning.
func Load(namesPath, sfPath string, required bool) (annot.Annotator, error) {
	var res annot.Annotator
	names, err := loadFile(namesPath, required, ParseNames)
	if err != nil {
		return res, err
	}
	sf, err := loadFile(sfPath, required, ParseSuperfamilies)
	if err != nil {
		return res, err
	}
	return annot.New(names, sf), nil
}

func loadFile(
	path string,
	required bool,
	parse func(io.Reader) (annot.Names, error),
) (annot.Names, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if required {
			return nil, ReadError(path, err)
		}
		gn.Warn("Reference table <em>%s</em> not found, names are skipped", path)
		slog.Warn("Reference table not found", "path", path)
		return nil, nil
	}

	f, err := iotable.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	res, err := parse(f)
	if err != nil {
		return nil, FormatError(path, err)
	}
	slog.Info("Loaded reference table", "path", path, "entries", len(res))
	return res, nil
}

// ParseNames reads the colon-delimited CATH names file. Each line looks
// like "<code> <representative domain> :<name>". Blank lines and lines
// starting with "#" are ignored, the first name of a code wins.
func ParseNames(r io.Reader) (annot.Names, error) {
	res := make(annot.Names)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		left, name, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(left)
		if len(fields) < 2 {
			continue
		}
		code := fields[len(fields)-2]
		if _, ok := res[code]; ok {
			continue
		}
		res[code] = strings.TrimSpace(name)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseSuperfamilies reads the tab-delimited superfamily list with
// "# CATH_ID" and "NAME" columns. Rows without a name are ignored, the
// first name of a code wins.
func ParseSuperfamilies(r io.Reader) (annot.Names, error) {
	tbl, err := iotable.Parse(r)
	if err != nil {
		return nil, err
	}
	ci, ok := tbl.Column(sfIDColumn)
	if !ok {
		return nil, fmt.Errorf("no %q column", sfIDColumn)
	}
	ni, ok := tbl.Column(sfNameColumn)
	if !ok {
		return nil, fmt.Errorf("no %q column", sfNameColumn)
	}

	res := make(annot.Names, tbl.Len())
	for _, row := range tbl.Rows {
		code := strings.TrimSpace(row[ci])
		name := strings.TrimSpace(row[ni])
		if code == "" || name == "" {
			continue
		}
		if _, ok := res[code]; ok {
			continue
		}
		res[code] = name
	}
	return res, nil
}
