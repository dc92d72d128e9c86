package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/finki-emc/aas-client/internal/app/access"
	"github.com/finki-emc/aas-client/internal/app/collections"
	"github.com/finki-emc/aas-client/internal/app/models"
)

func studentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "students",
		Usage: "Manage student profiles",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all students",
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageStudents, access.SeeAll); err != nil {
						return err
					}

					store := collections.NewStudents(c.Context, con.repos, collections.StudentModes{})
					if store.Loading() {
						return fmt.Errorf("students did not load; check the backend and your session")
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tINDEX\tMAJOR\tNAME\tEMAIL")
					for _, st := range store.Items() {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\n",
							st.ID, st.StudentIndex, st.Major,
							st.StudentFirstName, st.StudentLastName, st.StudentEmail)
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Usage: "Create a student profile for an existing user",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user", Required: true},
					&cli.StringFlag{Name: "index", Required: true},
					&cli.StringFlag{Name: "major", Required: true},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageStudents, access.Create); err != nil {
						return err
					}

					store := collections.NewStudents(c.Context, con.repos, collections.StudentModes{Add: collections.Propagate})
					_, err = store.OnAdd(c.Context, models.CreateStudent{
						StudentIndex: c.String("index"),
						Major:        c.String("major"),
						UserID:       c.Int64("user"),
					})
					return err
				},
			},
			{
				Name:  "edit",
				Usage: "Edit a student profile",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "index", Required: true},
					&cli.StringFlag{Name: "major", Required: true},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageStudents, access.Edit); err != nil {
						return err
					}

					store := collections.NewStudents(c.Context, con.repos, collections.StudentModes{})
					st := store.FindByID(c.Context, c.Int64("id"))
					if st == nil {
						return fmt.Errorf("student %d not found", c.Int64("id"))
					}

					return store.OnEdit(c.Context, st.ID, models.CreateStudent{
						StudentIndex: c.String("index"),
						Major:        c.String("major"),
						UserID:       st.UserID,
					})
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a student profile, optionally cascading to its user",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "with-user", Usage: "also delete the linked user account"},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageStudents, access.Delete); err != nil {
						return err
					}

					if c.Bool("with-user") {
						return con.coord.DeleteStudentCascade(c.Context, c.Int64("id"))
					}
					return con.coord.DeleteStudentKeepUser(c.Context, c.Int64("id"))
				},
			},
			{
				Name:  "registrations",
				Usage: "List a student's exam registrations",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewStudents(c.Context, con.repos, collections.StudentModes{})
					for _, reg := range store.ExamRegistrations(c.Context, c.Int64("id")) {
						fmt.Printf("%s %s %s %s\n", reg.ExamCourse, reg.ExamSession, reg.ExamDate, reg.ExamStatus)
					}
					return nil
				},
			},
			{
				Name:  "enrollments",
				Usage: "List a student's course enrollments",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewStudents(c.Context, con.repos, collections.StudentModes{})
					for _, e := range store.CourseEnrollments(c.Context, c.Int64("id")) {
						fmt.Printf("%s %s\n", e.CourseCode, e.CourseName)
					}
					return nil
				},
			},
		},
	}
}
