package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := c.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := c.tokens.Save(payload.Token); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s logged in as %s (%s), token expires in %s\n",
				color.GreenString("✓"), payload.User.Email, payload.User.Role, payload.ExpiresIn)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stateless server side; a failure here must not keep the token
			_ = c.api.Logout(cmd.Context())
			if err := c.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "logged out")
			return nil
		},
	}
}

func (c *cli) registerCmd() *cobra.Command {
	var email, password, role string
	var login bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := c.api.Register(cmd.Context(), email, password, role)
			if err != nil {
				return err
			}
			if login {
				if err := c.tokens.Save(payload.Token); err != nil {
					return err
				}
			}
			fmt.Fprintf(c.out, "%s registered %s (%s)\n", color.GreenString("✓"), payload.User.Email, payload.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&role, "role", "", "admin, hr or employee (admin session required for anything but employee)")
	cmd.Flags().BoolVar(&login, "login", false, "store the returned token")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := c.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			if me == nil {
				return errors.New("not logged in")
			}
			fmt.Fprintf(c.out, "%s (%s)\n", me.Email, me.Role)
			if me.Employee != nil {
				fmt.Fprintf(c.out, "employee: %s %s\n", me.Employee.EmployeeCode, me.Employee.Name)
			}
			return nil
		},
	}
}

func (c *cli) passwdCmd() *cobra.Command {
	var oldPassword, newPassword string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.api.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPassword, "old", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}
