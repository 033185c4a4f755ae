package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizora-cli/internal/domain"
	"quizora-cli/internal/flow"
)

func newSignInCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if email == "" {
				email = p.Line("Email")
			}
			if password == "" {
				password = p.Line("Password")
			}
			if email == "" || password == "" {
				return fmt.Errorf("please fill in all fields")
			}

			if err := e.session.Login(cmd.Context(), e.api, domain.SignInRequest{Email: email, Password: password}); err != nil {
				return fmt.Errorf("%s", flow.ErrorMessage(err, "Login failed. Please check your credentials and try again."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Welcome to Quizora!")
			if user := e.session.User(); user != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newSignUpCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if name == "" {
				name = p.Line("Name")
			}
			if email == "" {
				email = p.Line("Email")
			}
			if password == "" {
				password = p.Line("Password")
			}
			if name == "" || email == "" || password == "" {
				return fmt.Errorf("please fill in all fields")
			}
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters long")
			}

			if err := e.api.SignUp(cmd.Context(), domain.SignUpRequest{Name: name, Email: email, Password: password}); err != nil {
				return fmt.Errorf("%s", flow.ErrorMessage(err, "Signup failed. Please try again."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created successfully! Please sign in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			e.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if err := e.requireAuth(); err != nil {
				return err
			}

			user := e.session.User()
			if user == nil {
				fetched, err := e.api.FetchProfile(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s", flow.ErrorMessage(err, "Failed to load profile. Please sign in again."))
				}
				user = &fetched
				e.session.SetUser(user)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\n", user.Name)
			fmt.Fprintf(out, "Email: %s\n", user.Email)
			fmt.Fprintf(out, "Role:  %s\n", user.Role)
			if e.session.IsAdmin() {
				fmt.Fprintln(out, "Admin: yes")
			}
			return nil
		},
	}
}
