// Command rostercheck validates a roster file offline and prints the
// import report it would produce. Names already stored on the server are
// not checked.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/roster"
	"github.com/innovatefest/hackathon-api/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Printf("Warning: %v; using built-in defaults", err)
		cfg = &config.Config{MaxImportRows: 10000}
	}

	genderFile := flag.String("genders", cfg.GenderTokensFile, "gender vocabulary TOML file")
	maxRows := flag.Int("max-rows", cfg.MaxImportRows, "maximum number of team rows")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] roster.csv|roster.xlsx\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	genders, err := roster.LoadGenderScheme(*genderFile)
	if err != nil {
		log.Fatalf("Failed to load gender tokens: %v", err)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	report, err := check(context.Background(), data, path, *maxRows, genders)
	if err != nil {
		log.Fatalf("%s: %s", path, errors.Message(err))
	}

	if err := printJSON(os.Stdout, report); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}

// check runs the parser and every row rule except the stored-name lookup
func check(ctx context.Context, data []byte, filename string, maxRows int, genders *roster.GenderScheme) (*models.ImportReport, error) {
	format, err := roster.FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	rows, err := roster.Parse(data, format, maxRows)
	if err != nil {
		return nil, err
	}

	report := models.NewImportReport()
	batch := roster.NewValidator(genders).NewBatch(nil)
	for _, row := range rows {
		team, err := batch.Check(ctx, row)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", row.Label(), errors.Message(err)))
			continue
		}
		batch.Accept(team.Name)
		report.ImportedCount++
		report.ImportedTeams = append(report.ImportedTeams, team.Name)
	}
	return report, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
