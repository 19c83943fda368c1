package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/roster/rostertest"
)

func TestFormatFromFilename(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		expected Format
		wantErr  bool
	}{
		{name: "csv", filename: "teams.csv", expected: FormatCSV},
		{name: "xlsx upper case", filename: "TEAMS.XLSX", expected: FormatXLSX},
		{name: "legacy excel", filename: "teams.xls", wantErr: true},
		{name: "no extension", filename: "teams", wantErr: true},
		{name: "pdf", filename: "teams.pdf", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			format, err := FormatFromFilename(tc.filename)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "team_name", NormalizeHeader(" Team Name "))
	assert.Equal(t, "member_1_email", NormalizeHeader("Member-1-Email"))
	assert.Equal(t, "problem_statement_title", NormalizeHeader("PROBLEM_STATEMENT_TITLE"))
	assert.Equal(t, "team_name", NormalizeHeader("\ufeffTeam_Name"))
}

func TestParseCSV(t *testing.T) {
	alpha := rostertest.Valid("Alpha")
	alpha.Members[2].Lead = "yes"
	data := rostertest.CSV(alpha, rostertest.Valid("Beta"))

	rows, err := Parse(data, FormatCSV, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, "Alpha", rows[0].TeamName)
	assert.Equal(t, "Alpha problem", rows[0].ProblemStatement)
	assert.Equal(t, "AI", rows[0].Track)
	require.Len(t, rows[0].Members, 6)
	assert.Equal(t, "Female", rows[0].Members[0].Gender)
	assert.True(t, rows[0].Members[2].Lead)
	assert.False(t, rows[0].Members[0].Lead)
	assert.Equal(t, 3, rows[1].Number)
}

func TestParseSkipsBlankRowsKeepingNumbers(t *testing.T) {
	data := []byte("Team_Name,Problem_Statement_Title\nAlpha,P1\n,\n   ,  \nBeta,P2\n")

	rows, err := Parse(data, FormatCSV, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 5, rows[1].Number)
	assert.Empty(t, rows[1].Members)
}

func TestParseNumbersRowsByFileLine(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		lines []int
	}{
		{"empty line", "Team_Name,Problem_Statement_Title\nAlpha,P1\n\nBeta,P2\n", []int{2, 4}},
		{"several empty lines", "Team_Name,Problem_Statement_Title\n\nAlpha,P1\n\n\nBeta,P2\n", []int{3, 6}},
		{"multi-line cell", "Team_Name,Problem_Statement_Title\nAlpha,\"first\nsecond\"\nBeta,P2\n", []int{2, 4}},
		{"CRLF", "Team_Name,Problem_Statement_Title\r\nAlpha,P1\r\n\r\nBeta,P2\r\n", []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse([]byte(tt.data), FormatCSV, 0)
			require.NoError(t, err)
			require.Len(t, rows, len(tt.lines))
			for i, line := range tt.lines {
				assert.Equal(t, line, rows[i].Number, rows[i].TeamName)
			}
		})
	}
}

func TestParseCountsOnlyNamedSlots(t *testing.T) {
	team := rostertest.Valid("Gamma")
	team.Members[3].Name = ""

	rows, err := Parse(rostertest.CSV(team), FormatCSV, 0)
	require.NoError(t, err)
	require.Len(t, rows[0].Members, 5)
	assert.Equal(t, 5, rows[0].Members[3].Slot)
}

func TestParseMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		maxRows int
	}{
		{name: "empty file", content: ""},
		{name: "missing team name column", content: "Name,Problem_Statement_Title\nA,B\n"},
		{name: "missing problem statement column", content: "Team_Name,Track\nA,AI\n"},
		{name: "unterminated quote", content: "Team_Name,Problem_Statement_Title\n\"Alpha,P\n"},
		{name: "too many rows", content: "Team_Name,Problem_Statement_Title\nA,P\nB,P\nC,P\n", maxRows: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := Parse([]byte(tc.content), FormatCSV, tc.maxRows)
			assert.ErrorIs(t, err, apperrors.ErrMalformedFile)
			assert.Nil(t, rows)
		})
	}
}

func TestParseXLSX(t *testing.T) {
	data, err := rostertest.XLSX(rostertest.Valid("Delta"), rostertest.Valid("Epsilon"))
	require.NoError(t, err)

	rows, err := Parse(data, FormatXLSX, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Delta", rows[0].TeamName)
	assert.Len(t, rows[0].Members, 6)
	assert.Equal(t, "epsilon.m6@example.com", rows[1].Members[5].Email)
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("definitely not a zip archive"), FormatXLSX, 0)
	assert.ErrorIs(t, err, apperrors.ErrMalformedFile)
}
