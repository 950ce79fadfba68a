package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stemsi/academic-portal/internal/catalog"
	"github.com/stemsi/academic-portal/internal/config"
	"github.com/stemsi/academic-portal/internal/portal"
	"github.com/stemsi/academic-portal/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <student-id>",
	Short: "Print a student's report",
	Long: `Fetch CGPA, profile, attendance and results for a student and print
them as one report. Unknown IDs and IDs without attendance are errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	// Same environment as the server, so headers and the catalogue match.
	cfg := config.Load()
	courses, err := catalog.Load(cfg.CourseCatalogFile)
	if err != nil {
		return err
	}

	header := report.Header{
		Institution:  cfg.InstitutionName,
		Department:   cfg.Department,
		AcademicYear: cfg.AcademicYear,
	}

	r, err := newClient().Report(cmd.Context(), args[0], header, courses)
	if err != nil {
		return errors.New(portal.ErrorMessage(args[0], err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderTerminal(r, cfg.PassMarker))
	return nil
}
