package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/finki-emc/aas-client/internal/app/access"
	"github.com/finki-emc/aas-client/internal/app/collections"
	"github.com/finki-emc/aas-client/internal/app/csvfile"
	"github.com/finki-emc/aas-client/internal/app/models"
)

// parseClock parses an HH:MM or HH:MM:SS command-line argument
func parseClock(s string) (models.ClockTime, error) {
	layout := "15:04:05"
	if len(s) == len("15:04") {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return models.ClockTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return models.NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
}

func examsCommand() *cli.Command {
	return &cli.Command{
		Name:  "exams",
		Usage: "Manage exams",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all exams",
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					if store.Loading() {
						return fmt.Errorf("exams did not load; check the backend and your session")
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tCOURSE\tSESSION\tDATE\tTIME\tCAPACITY\tLABS")
					for _, exam := range store.Items() {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s-%s\t%d\t%s\n",
							exam.ID, exam.Course.CourseCode, exam.Session, exam.DateOfExam,
							exam.StartTime.Display(), exam.EndTime.Display(),
							exam.CapacityOfStudents, strings.Join(exam.ReservedLaboratories, ","))
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Usage: "Create an exam",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "course", Required: true},
					&cli.StringFlag{Name: "session", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "yyyy-mm-dd"},
					&cli.StringFlag{Name: "start", Required: true, Usage: "HH:MM"},
					&cli.StringFlag{Name: "end", Required: true, Usage: "HH:MM"},
					&cli.IntFlag{Name: "capacity", Required: true},
					&cli.StringSliceFlag{Name: "lab", Usage: "reserved laboratory, repeatable"},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageExams, access.Create); err != nil {
						return err
					}

					date, err := time.Parse("2006-01-02", c.String("date"))
					if err != nil {
						return fmt.Errorf("invalid date: %w", err)
					}
					start, err := parseClock(c.String("start"))
					if err != nil {
						return err
					}
					end, err := parseClock(c.String("end"))
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					return store.OnAdd(c.Context, models.CreateExam{
						Session:              c.String("session"),
						DateOfExam:           models.Date{Time: date},
						StartTime:            start,
						EndTime:              end,
						CapacityOfStudents:   c.Int("capacity"),
						ReservedLaboratories: c.StringSlice("lab"),
						CourseID:             c.Int64("course"),
					})
				},
			},
			{
				Name:  "edit",
				Usage: "Edit an exam",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.Int64Flag{Name: "course", Required: true},
					&cli.StringFlag{Name: "session", Required: true},
					&cli.StringFlag{Name: "date", Required: true, Usage: "yyyy-mm-dd"},
					&cli.StringFlag{Name: "start", Required: true, Usage: "HH:MM"},
					&cli.StringFlag{Name: "end", Required: true, Usage: "HH:MM"},
					&cli.IntFlag{Name: "capacity", Required: true},
					&cli.StringSliceFlag{Name: "lab", Usage: "reserved laboratory, repeatable"},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageExams, access.Edit); err != nil {
						return err
					}

					date, err := time.Parse("2006-01-02", c.String("date"))
					if err != nil {
						return fmt.Errorf("invalid date: %w", err)
					}
					start, err := parseClock(c.String("start"))
					if err != nil {
						return err
					}
					end, err := parseClock(c.String("end"))
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					return store.OnEdit(c.Context, c.Int64("id"), models.CreateExam{
						Session:              c.String("session"),
						DateOfExam:           models.Date{Time: date},
						StartTime:            start,
						EndTime:              end,
						CapacityOfStudents:   c.Int("capacity"),
						ReservedLaboratories: c.StringSlice("lab"),
						CourseID:             c.Int64("course"),
					})
				},
			},
			{
				Name:  "delete",
				Usage: "Delete an exam",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageExams, access.Delete); err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					return store.OnDelete(c.Context, c.Int64("id"))
				},
			},
			{
				Name:  "register",
				Usage: "Register the logged-in student for an exam",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageExams, access.Register); err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{Register: collections.Propagate})
					return store.Register(c.Context, c.Int64("id"))
				},
			},
			{
				Name:  "registered",
				Usage: "List students registered for an exam",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					for _, reg := range store.RegisteredStudents(c.Context, c.Int64("id")) {
						fmt.Printf("%s %s\n", reg.StudentIndex, reg.ExamStatus)
					}
					return nil
				},
			},
			{
				Name:  "attended",
				Usage: "List students who attended an exam",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					for _, reg := range store.AttendedStudents(c.Context, c.Int64("id")) {
						fmt.Println(reg.StudentIndex)
					}
					return nil
				},
			},
			{
				Name:  "absent",
				Usage: "List students who missed an exam",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					for _, reg := range store.AbsentStudents(c.Context, c.Int64("id")) {
						fmt.Println(reg.StudentIndex)
					}
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "Export registered, attended or absent students as CSV",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "kind", Value: "registered", Usage: "registered|attended|absent"},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageExams, access.Export); err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					exam := store.FindByID(c.Context, c.Int64("id"))
					if exam == nil {
						return fmt.Errorf("exam %d not found", c.Int64("id"))
					}

					var blob []byte
					kind := c.String("kind")
					switch kind {
					case "registered":
						blob = store.ExportRegisteredStudentsCSV(c.Context, exam.ID)
					case "attended":
						blob = store.ExportAttendedStudentsCSV(c.Context, exam.ID)
					case "absent":
						blob = store.ExportAbsentStudentsCSV(c.Context, exam.ID)
					default:
						return fmt.Errorf("unknown kind %q", kind)
					}
					if blob == nil {
						return fmt.Errorf("export failed")
					}

					name := csvfile.ExportName("exam", exam.Course.CourseCode, kind)
					path, err := csvfile.Save(con.cfg.CSV.DownloadDir, name, blob)
					if err != nil {
						return err
					}
					fmt.Println("Saved", path)
					return nil
				},
			},
			{
				Name:  "import-attended",
				Usage: "Import an attendance CSV for an exam",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "file", Required: true},
				},
				Action: func(c *cli.Context) error {
					con, err := newConsole(c)
					if err != nil {
						return err
					}
					if err := con.requireCapability(c.Context, access.PageExams, access.Import); err != nil {
						return err
					}

					data, err := os.ReadFile(c.String("file"))
					if err != nil {
						return err
					}

					store := collections.NewExams(c.Context, con.repos, collections.ExamModes{})
					return store.ImportAttendedStudentsCSV(c.Context, c.Int64("id"), c.String("file"), data)
				},
			},
		},
	}
}
