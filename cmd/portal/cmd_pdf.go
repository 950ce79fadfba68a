package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pdfOutput string

var pdfCmd = &cobra.Command{
	Use:   "pdf <student-id>",
	Short: "Download a report as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDF,
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "output file (default report-<id>.pdf)")
}

func runPDF(cmd *cobra.Command, args []string) error {
	out := pdfOutput
	if out == "" {
		out = fmt.Sprintf("report-%s.pdf", args[0])
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := newClient().DownloadPDF(cmd.Context(), args[0], f); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Saved "+out))
	return nil
}
