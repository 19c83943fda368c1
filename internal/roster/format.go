package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/innovatefest/hackathon-api/internal/errors"
)

// Format is a supported roster file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Column names after normalization
const (
	ColTeamName         = "team_name"
	ColProblemStatement = "problem_statement_title"
	ColTrack            = "track"
)

// FormatFromFilename picks the format from the file extension
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch Format(ext) {
	case FormatCSV, FormatXLSX:
		return Format(ext), nil
	}
	return "", errors.UnsupportedFormat(ext)
}

// MemberSlot is one of the six member column groups of a row
type MemberSlot struct {
	Slot   int
	Name   string
	Email  string
	Gender string
	Lead   bool
}

// Row is one team as read from the file
type Row struct {
	Number           int
	TeamName         string
	ProblemStatement string
	Track            string
	// Members holds the slots that have a name, in slot order
	Members []MemberSlot
}

// Label identifies the row in report entries
func (r Row) Label() string {
	if r.TeamName == "" {
		return fmt.Sprintf("Row %d", r.Number)
	}
	return fmt.Sprintf("Row %d (%s)", r.Number, r.TeamName)
}

// Parse reads a roster file into rows numbered by file line. Blank rows are
// skipped. Any error is
// a MalformedFile or UnsupportedFormat AppError and no rows are returned.
// A maxRows of zero disables the row limit.
func Parse(data []byte, format Format, maxRows int) ([]Row, error) {
	var (
		records []record
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = readCSV(data)
	case FormatXLSX:
		records, err = readXLSX(data)
	default:
		return nil, errors.UnsupportedFormat(string(format))
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 || isBlank(records[0].cells) {
		return nil, errors.MalformedFile("file has no header row", nil)
	}

	header := make(map[string]int, len(records[0].cells))
	for i, h := range records[0].cells {
		key := NormalizeHeader(h)
		if _, dup := header[key]; !dup && key != "" {
			header[key] = i
		}
	}
	for _, required := range []string{ColTeamName, ColProblemStatement} {
		if _, ok := header[required]; !ok {
			return nil, errors.MalformedFile(fmt.Sprintf("missing required column %q", required), nil)
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec.cells) {
			continue
		}
		if maxRows > 0 && len(rows) == maxRows {
			return nil, errors.MalformedFile(fmt.Sprintf("file exceeds the limit of %d rows", maxRows), nil)
		}
		rows = append(rows, buildRow(rec.line, rec.cells, header))
	}
	return rows, nil
}

// NormalizeHeader lowercases a column name and turns spaces and hyphens
// into underscores.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func buildRow(number int, rec []string, header map[string]int) Row {
	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	row := Row{
		Number:           number,
		TeamName:         cell(ColTeamName),
		ProblemStatement: cell(ColProblemStatement),
		Track:            cell(ColTrack),
	}
	for slot := 1; slot <= 6; slot++ {
		prefix := "member_" + strconv.Itoa(slot) + "_"
		name := cell(prefix + "name")
		if name == "" {
			continue
		}
		row.Members = append(row.Members, MemberSlot{
			Slot:   slot,
			Name:   name,
			Email:  cell(prefix + "email"),
			Gender: cell(prefix + "gender"),
			Lead:   truthy(cell(prefix + "lead")),
		})
	}
	return row
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "y", "true", "1", "x":
		return true
	}
	return false
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// record is one row of cells with the file line it starts on
type record struct {
	line  int
	cells []string
}

func readCSV(data []byte) ([]record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records []record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.MalformedFile("could not parse CSV", err)
		}
		// The reader drops empty lines, so take the line from the reader.
		line, _ := r.FieldPos(0)
		records = append(records, record{line: line, cells: rec})
	}
	return records, nil
}

func readXLSX(data []byte) ([]record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.MalformedFile("could not open spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.MalformedFile("spreadsheet has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.MalformedFile("could not read spreadsheet rows", err)
	}

	records := make([]record, len(rows))
	for i, cells := range rows {
		records[i] = record{line: i + 1, cells: cells}
	}
	return records, nil
}
