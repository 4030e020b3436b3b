package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in, or print a password hash for the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		if hash, _ := cmd.Flags().GetBool("hash"); hash {
			pw, err := readPassword(in, out, "Password: ")
			if err != nil {
				return err
			}
			h, err := auth.HashPassword(pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "TRACETUTOR_PASSWORD_HASH='%s'\n", h)
			return nil
		}

		if !cfg.AuthEnabled() {
			fmt.Fprintln(out, "No credentials configured (TRACETUTOR_USER, TRACETUTOR_PASSWORD_HASH); login is not required.")
			return nil
		}

		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			fmt.Fprint(out, "Benutzername: ")
			line, err := in.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read user: %w", err)
			}
			user = strings.TrimSpace(line)
		}
		pw, err := readPassword(in, out, "Passwort: ")
		if err != nil {
			return err
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gate := auth.NewLocal(cfg.User, cfg.PasswordHash, st.KVRepo())
		ok, err := gate.Login(cmd.Context(), user, pw)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("benutzername oder passwort ist falsch")
		}
		fmt.Fprintf(out, "Angemeldet als %s.\n", user)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gate := auth.NewLocal(cfg.User, cfg.PasswordHash, st.KVRepo())
		if err := gate.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Abgemeldet.")
		return nil
	},
}

// readPassword reads without echo from a terminal and falls back to one
// plain line otherwise.
func readPassword(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if fd := os.Stdin.Fd(); term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringP("user", "u", "", "User name (prompted when empty)")
	loginCmd.Flags().Bool("hash", false, "Print a bcrypt hash of the entered password and exit")
}
