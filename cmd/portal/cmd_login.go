package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginID string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check a faculty login",
	Long: `Check an ID and password against the login file. The password is
read from the terminal without echo, or from stdin when piped.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginID, "id", "", "login ID")
	_ = loginCmd.MarkFlagRequired("id")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(cmd.ErrOrStderr(), os.Stdin)
	if err != nil {
		return err
	}

	resp, err := newClient().Login(cmd.Context(), loginID, password)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Message)
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(resp.Message))
	return nil
}

func readPassword(prompt io.Writer, in *os.File) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
