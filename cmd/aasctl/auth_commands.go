package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and cache the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			con, err := newConsole(c)
			if err != nil {
				return err
			}

			if err := con.session.Login(c.Context, c.String("email"), c.String("password")); err != nil {
				return err
			}
			if err := con.saveToken(); err != nil {
				return fmt.Errorf("logged in, but could not cache token: %w", err)
			}

			fmt.Printf("Logged in as %s\n", c.String("email"))
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Discard the cached session token",
		Action: func(c *cli.Context) error {
			con, err := newConsole(c)
			if err != nil {
				return err
			}

			con.session.Logout()
			con.clearToken()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged-in user's profile",
		Action: func(c *cli.Context) error {
			con, err := newConsole(c)
			if err != nil {
				return err
			}

			profile, err := con.repos.User.Me(c.Context)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s <%s> role=%s\n", profile.FirstName, profile.LastName, profile.Email, profile.UserRole)
			if profile.StudentID != nil {
				fmt.Printf("  student: index=%s major=%s\n", profile.StudentIndex, profile.Major)
			}
			if profile.StaffID != nil {
				fmt.Printf("  staff: role=%s\n", profile.StaffRole)
			}
			return nil
		},
	}
}
