// Command portal looks up student reports from a running portal server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/stemsi/academic-portal/internal/client"
)

var (
	apiURL  string
	timeout time.Duration

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Student academic report client",
	Long: `Query a running academic portal server from the terminal.

Available subcommands:
  show  - Print a student's report
  login - Check a faculty login
  share - Print a WhatsApp share link for a report
  pdf   - Download a report as PDF`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", client.DefaultBaseURL, "portal server base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	rootCmd.AddCommand(showCmd, loginCmd, shareCmd, pdfCmd)
}

func newClient() *client.Client {
	return client.New(apiURL, timeout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		stop()
		os.Exit(1)
	}
}
