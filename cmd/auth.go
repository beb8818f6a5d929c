package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/forms"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/session"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = readLine("Password: "); err != nil {
				return err
			}
		}

		form := forms.NewLoginForm(a.validator)
		_ = form.Update(func(d *models.LoginDraft) {
			d.Email = email
			d.Password = password
		})

		var s *models.Session
		err := form.Submit(cmd.Context(), func(ctx context.Context, d models.LoginDraft) error {
			var err error
			s, err = a.sessions.Login(ctx, d)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Logged in as %s\n", displayName(s.User))
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.sessions.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Logged out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		s, err := a.sessions.Current(cmd.Context())
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("%w: run `assessment-console login`", err)
		}
		if err != nil {
			return err
		}

		user := s.User
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			me, err := a.services.Auth().Me(cmd.Context())
			if err != nil {
				return err
			}
			user = *me
		}

		fmt.Fprintf(a.out, "%s <%s>\n", displayName(user), user.Email)
		if user.Role != "" {
			fmt.Fprintf(a.out, "role: %s\n", user.Role)
		}
		if !s.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, "expires: %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a platform account",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		flags := cmd.Flags()
		email, _ := flags.GetString("email")
		first, _ := flags.GetString("first-name")
		last, _ := flags.GetString("last-name")
		role, _ := flags.GetString("role")
		company, _ := flags.GetString("company")

		password, err := readLine("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readLine("Confirm password: ")
		if err != nil {
			return err
		}

		form := forms.NewRegisterForm(a.validator, forms.WithNotifier[models.RegisterDraft](a.hub))
		_ = form.Update(func(d *models.RegisterDraft) {
			d.Email = email
			d.Password = password
			d.ConfirmPassword = confirm
			d.FirstName = first
			d.LastName = last
			d.Company = company
			if role != "" {
				d.Role = models.UserRole(role)
			}
		})
		return form.Submit(cmd.Context(), func(ctx context.Context, d models.RegisterDraft) error {
			_, err := a.services.Auth().Register(ctx, d)
			return err
		})
	}),
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

var stdin = bufio.NewReader(os.Stdin)

func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when empty)")
	_ = loginCmd.MarkFlagRequired("email")

	whoamiCmd.Flags().Bool("remote", false, "Ask the platform instead of the stored session")

	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	registerCmd.Flags().String("role", "", "employer or candidate (default candidate)")
	registerCmd.Flags().String("company", "", "Company, required for employers")

	rootCmd.AddCommand(registerCmd)
}
