// Command verify-data parses every data file the way the server does and
// reports row counts and rows whose width does not match the header.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/stemsi/academic-portal/internal/config"
	"github.com/stemsi/academic-portal/internal/flatfile"
	"github.com/stemsi/academic-portal/internal/repository"
)

var (
	dataDir  string
	maxShown int

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// scanner parses one data file.
type scanner interface {
	Path() string
	Scan(ctx context.Context) (*flatfile.Table, error)
}

type dataFile struct {
	label string
	src   scanner
}

func dataFiles(cfg *config.Config) []dataFile {
	return []dataFile{
		{"profile", repository.NewStudentRepository(cfg.Path(cfg.ProfileFile))},
		{"attendance", repository.NewAttendanceRepository(cfg.Path(cfg.AttendanceFile))},
		{"results", repository.NewResultRepository(cfg.Path(cfg.ResultsFile))},
		{"cgpa", repository.NewCGPARepository(cfg.Path(cfg.CGPAFile))},
		{"login", repository.NewCredentialRepository(cfg.Path(cfg.LoginFile))},
	}
}

var rootCmd = &cobra.Command{
	Use:           "verify-data",
	Short:         "Check the CSV exports before serving them",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		return verify(cmd.Context(), cmd.OutOrStdout(), dataFiles(cfg), maxShown)
	},
}

func init() {
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "override DATA_DIR")
	rootCmd.Flags().IntVar(&maxShown, "max-rows", 10, "irregular rows listed per file")
}

// verify prints a line per file and fails when any file cannot be parsed.
// Irregular rows are warnings only.
func verify(ctx context.Context, out io.Writer, files []dataFile, limit int) error {
	failed := 0
	for _, f := range files {
		table, err := f.src.Scan(ctx)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %-10s %s\n", failStyle.Render("FAIL"), f.label, err)
			continue
		}

		irregular := table.Irregular()
		status := okStyle.Render("OK  ")
		if len(irregular) > 0 {
			status = warnStyle.Render("WARN")
		}
		fmt.Fprintf(out, "%s %-10s %s: %d rows, %d columns (%s)\n",
			status, f.label, f.src.Path(), len(table.Rows), len(table.Header), strings.Join(table.Header, ", "))

		for i, row := range irregular {
			if i == limit {
				fmt.Fprintf(out, "     ... %d more\n", len(irregular)-limit)
				break
			}
			fmt.Fprintf(out, "     line %d: %d cells, header has %d\n", row.Line, row.Width, table.HeaderWidth)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d data files failed to parse", failed, len(files))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(err.Error()))
		os.Exit(1)
	}
}
