package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"scratch/client"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type credentials struct {
	username string
	password string
}

func (cr *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cr.username, "username", "u", "", "Username (prompted when omitted)")
	cmd.Flags().StringVarP(&cr.password, "password", "p", "", "Password (prompted when omitted)")
}

// fill prompts for whatever was not given on the command line
func (cr *credentials) fill(in io.Reader, out io.Writer) error {
	if cr.username == "" {
		fmt.Fprint(out, "Username: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return serr.Wrap(err, "failed to read username")
		}
		cr.username = strings.TrimSpace(line)
	}
	if cr.password == "" {
		pass, err := promptPassword(out, "Password: ")
		if err != nil {
			return err
		}
		cr.password = pass
	}
	return nil
}

func promptPassword(out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", serr.New("stdin is not a terminal, pass --password")
	}
	fmt.Fprint(out, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", serr.Wrap(err, "failed to read password")
	}
	return strings.TrimSpace(string(pass)), nil
}

// authenticate runs register or login and saves the returned session
func (a *app) authenticate(cmd *cobra.Command, cr *credentials,
	call func(c *client.Client, ctx context.Context, username, password string) (string, error)) error {
	if err := cr.fill(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
		return err
	}

	c := client.New(a.cfg.APIURL, "", client.WithTimeout(a.cfg.Timeout))
	token, err := call(c, cmd.Context(), cr.username, cr.password)
	if err != nil {
		return err
	}
	if err := client.SaveToken(a.cfg.TokenPath, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", cr.username)
	return nil
}

func newRegisterCmd(a *app) *cobra.Command {
	var cr credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticate(cmd, &cr, (*client.Client).Register)
		},
	}
	cr.bind(cmd)
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var cr credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticate(cmd, &cr, (*client.Client).Login)
		},
	}
	cr.bind(cmd)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ClearToken(a.cfg.TokenPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
