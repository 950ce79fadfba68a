package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sharePhone string

var shareCmd = &cobra.Command{
	Use:   "share <student-id>",
	Short: "Print a WhatsApp share link for a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, _, err := newClient().ShareLink(cmd.Context(), args[0], sharePhone)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&sharePhone, "phone", "", "recipient phone number; ten digits get the country code")
	_ = shareCmd.MarkFlagRequired("phone")
}
