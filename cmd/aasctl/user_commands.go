package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/finki-emc/aas-client/internal/app/access"
	"github.com/finki-emc/aas-client/internal/app/collections"
	"github.com/finki-emc/aas-client/internal/app/csvfile"
	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
	"github.com/finki-emc/aas-client/internal/app/orchestration"
)

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all users",
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageUsers, access.SeeAll); err != nil {
						return err
					}

					store := collections.NewUsers(c.Context, con.repos, collections.DefaultUserModes())
					if store.Loading() {
						return fmt.Errorf("users did not load; check the backend and your session")
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
					for _, u := range store.Items() {
						fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.UserRole)
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Usage: "Create a user, with an optional linked student profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "role", Required: true, Usage: "ADMINISTRATOR|STAFF|STUDENT|USER"},
					&cli.StringFlag{Name: "index", Usage: "student index, STUDENT role only"},
					&cli.StringFlag{Name: "major", Usage: "student major, STUDENT role only"},
					&cli.BoolFlag{Name: "rollback-on-failure", Usage: "delete the user when the student profile fails"},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageUsers, access.Create); err != nil {
						return err
					}

					role := enums.UserRole(c.String("role"))
					if !role.Valid() {
						return fmt.Errorf("unknown role %q", c.String("role"))
					}

					policy := orchestration.CompensationKeep
					if c.Bool("rollback-on-failure") {
						policy = orchestration.CompensationRollback
					}
					coord := orchestration.NewCoordinator(con.repos.User, con.repos.Student, policy)

					user, err := coord.CreateUserWithProfile(c.Context, models.CreateUser{
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Email:     c.String("email"),
						Password:  c.String("password"),
						UserRole:  role,
					}, orchestration.StudentProfile{
						StudentIndex: c.String("index"),
						Major:        c.String("major"),
					})
					if err != nil {
						return err
					}

					fmt.Printf("Created user %d (%s)\n", user.ID, user.Email)
					return nil
				},
			},
			{
				Name:  "edit",
				Usage: "Edit a user, creating a student profile on a role change to STUDENT",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "role", Required: true},
					&cli.StringFlag{Name: "index"},
					&cli.StringFlag{Name: "major"},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageUsers, access.Edit); err != nil {
						return err
					}

					role := enums.UserRole(c.String("role"))
					if !role.Valid() {
						return fmt.Errorf("unknown role %q", c.String("role"))
					}

					previous, err := con.repos.User.FindByID(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}

					return con.coord.UpdateUser(c.Context, previous.ID, models.CreateUser{
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Email:     c.String("email"),
						UserRole:  role,
					}, previous.UserRole, orchestration.StudentProfile{
						StudentIndex: c.String("index"),
						Major:        c.String("major"),
					})
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a user",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageUsers, access.Delete); err != nil {
						return err
					}

					store := collections.NewUsers(c.Context, con.repos, collections.DefaultUserModes())
					return store.OnDelete(c.Context, c.Int64("id"))
				},
			},
			{
				Name:  "import",
				Usage: "Import users from CSV (template: firstName,lastName,email,password,userRole,studentIndex,major)",
				Flags: []cli.Flag{&cli.StringFlag{Name: "file", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageUsers, access.Import); err != nil {
						return err
					}

					data, err := os.ReadFile(c.String("file"))
					if err != nil {
						return err
					}

					store := collections.NewUsers(c.Context, con.repos, collections.DefaultUserModes())
					return store.ImportUsers(c.Context, c.String("file"), data)
				},
			},
			{
				Name:  "export",
				Usage: "Export users as CSV",
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageUsers, access.Export); err != nil {
						return err
					}

					store := collections.NewUsers(c.Context, con.repos, collections.DefaultUserModes())
					blob := store.ExportUsers(c.Context)
					if blob == nil {
						return fmt.Errorf("export failed")
					}

					path, err := csvfile.Save(con.cfg.CSV.DownloadDir, csvfile.ExportName("users", "all", "accounts"), blob)
					if err != nil {
						return err
					}
					fmt.Println("Saved", path)
					return nil
				},
			},
		},
	}
}
