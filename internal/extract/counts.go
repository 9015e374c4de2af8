package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/docindex"
	"github.com/abelzeko/popo-bot/internal/entities"
)

// Names of the daily series as the bulletin labels them.
const (
	FieldExhalations     = "Exhalaciones"
	FieldVolcanotectonic = "Volcanotectónicos"
	FieldTremorMinutes   = "Minutos de tremor"
	FieldExplosions      = "Explosiones"
)

var (
	tableSel  = docindex.MustCompile("table")
	rowSel    = docindex.MustCompile("tr")
	cellSel   = docindex.MustCompile("td")
	scriptSel = docindex.MustCompile("script")
)

// countStrategy looks up one day of a series. found is false when the
// strategy has nothing for that day; err is set when it found the row but
// could not read it.
type countStrategy func(doc *docindex.Document, field string, date entities.Date) (value uint32, found bool, err error)

// Historical pages render the series as static tables, live pages as Google
// Charts scripts. Tried in order.
var countStrategies = []countStrategy{
	staticTableCount,
	chartScriptCount,
}

// Count returns the value of the named daily series for date.
func Count(doc *docindex.Document, field string, date entities.Date) (uint32, error) {
	for _, strategy := range countStrategies {
		v, found, err := strategy(doc, field, date)
		if err != nil {
			return 0, err
		}
		if found {
			return v, nil
		}
	}
	return 0, apperr.Parsef("could not find %s data for date %s", field, date.DMY())
}

func staticTableCount(doc *docindex.Document, field string, date entities.Date) (uint32, bool, error) {
	want := date.DMY()
	for _, table := range doc.Select(tableSel) {
		if !strings.Contains(table.Text(), field) {
			continue
		}
		for _, row := range table.Select(rowSel) {
			cells := row.Select(cellSel)
			if len(cells) < 2 || strings.TrimSpace(cells[0].Text()) != want {
				continue
			}
			raw := cells[1].Text()
			v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return 0, false, apperr.Parsef("invalid value for %s: %s", field, raw)
			}
			return uint32(v), true, nil
		}
	}
	return 0, false, nil
}

const (
	rowsOpen  = "data.addRows(["
	rowsClose = "]);"
)

func chartScriptCount(doc *docindex.Document, field string, date entities.Date) (uint32, bool, error) {
	markers := []string{
		fmt.Sprintf("addColumn('number', '%s')", field),
		fmt.Sprintf(`addColumn("number", "%s")`, field),
	}
	want := date.String()

	for _, script := range doc.Select(scriptSel) {
		src := script.Text()
		for _, marker := range markers {
			pos := strings.Index(src, marker)
			if pos < 0 {
				continue
			}
			block, ok := rowsBlock(src[pos:])
			if !ok {
				continue
			}
			if v, ok := chartRowValue(block, want); ok {
				return v, true, nil
			}
		}
	}
	return 0, false, nil
}

// rowsBlock returns the text between the first "data.addRows([" in src and
// the "]);" closing it.
func rowsBlock(src string) (string, bool) {
	start := strings.Index(src, rowsOpen)
	if start < 0 {
		return "", false
	}
	rest := src[start+len(rowsOpen):]
	end := strings.Index(rest, rowsClose)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// chartRowValue walks rows shaped like ['2025-10-06 ...', 15, '#color'] and
// returns the number of the first row whose label starts with isoDate.
func chartRowValue(block, isoDate string) (uint32, bool) {
	for {
		open := strings.IndexByte(block, '[')
		if open < 0 {
			return 0, false
		}
		block = block[open+1:]
		closing := strings.IndexByte(block, ']')
		row := block
		if closing >= 0 {
			row = block[:closing]
			block = block[closing+1:]
		} else {
			block = ""
		}

		parts := strings.Split(row, ",")
		if len(parts) >= 2 {
			label := strings.Trim(strings.TrimSpace(parts[0]), `'"`)
			if strings.HasPrefix(label, isoDate) {
				if v, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32); err == nil {
					return uint32(v), true
				}
			}
		}
		if closing < 0 {
			return 0, false
		}
	}
}
