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
)

func coursesCommand() *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "Manage courses",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all courses",
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					if store.Loading() {
						return fmt.Errorf("courses did not load; check the backend and your session")
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tCODE\tNAME\tSEMESTER\tYEAR")
					for _, course := range store.Items() {
						fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
							course.ID, course.CourseCode, course.CourseName, course.Semester, course.AcademicYear)
					}
					return w.Flush()
				},
			},
			{
				Name:  "mine",
				Usage: "List the courses assigned to or enrolling the current user",
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageCourses, access.SeeMine); err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					profile, err := con.repos.User.Me(c.Context)
					if err != nil {
						return err
					}

					var courses []models.Course
					if profile.StaffID != nil {
						courses, err = store.ForStaff(c.Context)
					} else {
						courses, err = store.ForStudent(c.Context)
					}
					if err != nil {
						return err
					}

					for _, course := range courses {
						fmt.Printf("%d %s %s\n", course.ID, course.CourseCode, course.CourseName)
					}
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create a course",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.IntFlag{Name: "semester", Required: true},
					&cli.IntFlag{Name: "year", Required: true},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageCourses, access.Create); err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					return store.OnAdd(c.Context, models.CreateCourse{
						CourseCode:   c.String("code"),
						CourseName:   c.String("name"),
						Semester:     c.Int("semester"),
						AcademicYear: c.Int("year"),
					})
				},
			},
			{
				Name:  "edit",
				Usage: "Edit a course",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.IntFlag{Name: "semester", Required: true},
					&cli.IntFlag{Name: "year", Required: true},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageCourses, access.Edit); err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					return store.OnEdit(c.Context, c.Int64("id"), models.CreateCourse{
						CourseCode:   c.String("code"),
						CourseName:   c.String("name"),
						Semester:     c.Int("semester"),
						AcademicYear: c.Int("year"),
					})
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a course",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageCourses, access.Delete); err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					return store.OnDelete(c.Context, c.Int64("id"))
				},
			},
			{
				Name:  "enrolled",
				Usage: "List students enrolled in a course",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					for _, e := range store.EnrolledStudents(c.Context, c.Int64("id")) {
						fmt.Printf("%s (student %d)\n", e.StudentIndex, e.StudentID)
					}
					return nil
				},
			},
			{
				Name:  "staff",
				Usage: "List staff assigned to a course",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					for _, a := range store.AssignedStaff(c.Context, c.Int64("id")) {
						fmt.Printf("%s %s (%s)\n", a.FirstName, a.LastName, a.StaffRole)
					}
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "Export a course's enrolled-students roster as CSV",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageCourses, access.Export); err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					course := store.FindByID(c.Context, c.Int64("id"))
					if course == nil {
						return fmt.Errorf("course %d not found", c.Int64("id"))
					}

					blob := store.ExportEnrolledStudentsCSV(c.Context, course.ID)
					if blob == nil {
						return fmt.Errorf("export failed")
					}

					name := csvfile.ExportName("course", course.CourseCode, "enrolled")
					path, err := csvfile.Save(con.cfg.CSV.DownloadDir, name, blob)
					if err != nil {
						return err
					}
					fmt.Println("Saved", path)
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "Import an enrolled-students roster CSV into a course",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "file", Required: true},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageCourses, access.Import); err != nil {
						return err
					}

					data, err := os.ReadFile(c.String("file"))
					if err != nil {
						return err
					}

					store := collections.NewCourses(c.Context, con.repos, collections.DefaultCourseModes())
					return store.ImportEnrolledStudentsCSV(c.Context, c.Int64("id"), c.String("file"), data)
				},
			},
		},
	}
}
