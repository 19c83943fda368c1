// Package rostertest builds roster files for tests.
package rostertest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Member is one member column group
type Member struct {
	Name   string
	Email  string
	Gender string
	Lead   string
}

// Team is one roster row
type Team struct {
	Name    string
	Problem string
	Track   string
	Members []Member
}

// Members returns n members named after prefix. The first member is
// Female, the rest Male.
func Members(prefix string, n int) []Member {
	out := make([]Member, n)
	slug := strings.ToLower(strings.ReplaceAll(prefix, " ", ""))
	for i := range out {
		gender := "Male"
		if i == 0 {
			gender = "Female"
		}
		out[i] = Member{
			Name:   fmt.Sprintf("%s Member %d", prefix, i+1),
			Email:  fmt.Sprintf("%s.m%d@example.com", slug, i+1),
			Gender: gender,
		}
	}
	return out
}

// Valid returns a team that passes every import rule
func Valid(name string) Team {
	return Team{
		Name:    name,
		Problem: name + " problem",
		Track:   "AI",
		Members: Members(name, 6),
	}
}

// Header returns the full column header
func Header() []string {
	h := []string{"Team_Name", "Problem_Statement_Title", "Track"}
	for i := 1; i <= 6; i++ {
		h = append(h,
			fmt.Sprintf("Member_%d_Name", i),
			fmt.Sprintf("Member_%d_Email", i),
			fmt.Sprintf("Member_%d_Gender", i),
			fmt.Sprintf("Member_%d_Lead", i),
		)
	}
	return h
}

// Record returns the cells of one team row
func (t Team) Record() []string {
	rec := []string{t.Name, t.Problem, t.Track}
	for i := 0; i < 6; i++ {
		if i < len(t.Members) {
			m := t.Members[i]
			rec = append(rec, m.Name, m.Email, m.Gender, m.Lead)
		} else {
			rec = append(rec, "", "", "", "")
		}
	}
	return rec
}

// CSV renders the teams as a CSV file with header
func CSV(teams ...Team) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(Header())
	for _, t := range teams {
		_ = w.Write(t.Record())
	}
	w.Flush()
	return buf.Bytes()
}

// XLSX renders the teams as a single-sheet workbook
func XLSX(teams ...Team) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]string{Header()}
	for _, t := range teams {
		rows = append(rows, t.Record())
	}
	for i, rec := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(rec))
		for j, v := range rec {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
