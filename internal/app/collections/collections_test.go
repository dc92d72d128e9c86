package collections_test

import (
	"context"
	"sync"
	"testing"

	"github.com/finki-emc/aas-client/internal/apitest"
	"github.com/finki-emc/aas-client/internal/app/auth"
	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/collections"
	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
	"github.com/finki-emc/aas-client/internal/app/repositories"
)

// newSDK wires a session, client and repositories against the fake backend
func newSDK(t *testing.T, srv *apitest.Server) (*repositories.Repositories, *auth.Session) {
	t.Helper()

	session := auth.NewSession(nil)
	c := client.New(srv.URL(), session.Token)
	repos := repositories.NewRepositories(c)
	session.BindLogin(repos.User.Login)
	return repos, session
}

func login(t *testing.T, session *auth.Session, email, password string) {
	t.Helper()
	if err := session.Login(context.Background(), email, password); err != nil {
		t.Fatalf("login as %s: %v", email, err)
	}
}

func TestCoursesMountFetch(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	srv.SeedCourse("F23L2S112", "Operating Systems", 4, 2025)

	store := collections.NewCourses(context.Background(), repos, collections.DefaultCourseModes())

	if store.Loading() {
		t.Fatal("store still loading after mount fetch")
	}
	if got := store.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestCoursesStuckLoadingOnFailedMount(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	srv.FailNext("GET", "/courses", 1)

	store := collections.NewCourses(context.Background(), repos, collections.DefaultCourseModes())

	// A failed mount fetch leaves the store in the loading state with no items
	if !store.Loading() {
		t.Fatal("Loading() = false after failed mount fetch, want true")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("Len() = %d after failed mount fetch, want 0", got)
	}

	// Only an explicit refresh recovers
	store.Refresh(context.Background())
	if store.Loading() {
		t.Fatal("Loading() = true after successful refresh")
	}
	if got := store.Len(); got != 1 {
		t.Fatalf("Len() = %d after refresh, want 1", got)
	}
}

func TestCoursesAddResynchronizes(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	err := store.OnAdd(ctx, models.CreateCourse{
		CourseCode:   "F23L2S112",
		CourseName:   "Operating Systems",
		Semester:     4,
		AcademicYear: 2025,
	})
	if err != nil {
		t.Fatalf("OnAdd: %v", err)
	}

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("Items() has %d entries after add, want 2", len(items))
	}
	if items[1].CourseCode != "F23L2S112" {
		t.Fatalf("refetched list is missing the added course, got %+v", items)
	}
}

func TestCoursesBackToBackMutationsConverge(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	first := models.CreateCourse{CourseCode: "A1", CourseName: "First", Semester: 1, AcademicYear: 2025}
	second := models.CreateCourse{CourseCode: "A2", CourseName: "Second", Semester: 1, AcademicYear: 2025}
	if err := store.OnAdd(ctx, first); err != nil {
		t.Fatalf("first OnAdd: %v", err)
	}
	if err := store.OnAdd(ctx, second); err != nil {
		t.Fatalf("second OnAdd: %v", err)
	}

	if got := store.Len(); got != 2 {
		t.Fatalf("Len() = %d after two adds, want 2", got)
	}
}

func TestCoursesConcurrentRefreshConverges(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	srv.SeedCourse("F23L2S112", "Operating Systems", 4, 2025)

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	// Overlapping refreshes and reads; every response carries the same
	// backend truth, so whichever lands last the store must converge on it
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Refresh(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = store.Items()
		}()
	}
	wg.Wait()

	if got := store.Len(); got != 2 {
		t.Fatalf("Len() = %d after concurrent refreshes, want 2", got)
	}
	if store.Loading() {
		t.Fatal("Loading() = true after successful refreshes")
	}
}

func TestCoursesSwallowedMutationFailure(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	srv.FailNext("POST", "/courses/add", 1)
	err := store.OnAdd(ctx, models.CreateCourse{CourseCode: "X", CourseName: "X", Semester: 1, AcademicYear: 2025})

	// Add runs in swallow mode: the failure is logged, the caller sees success
	if err != nil {
		t.Fatalf("OnAdd returned %v in swallow mode, want nil", err)
	}
	if got := store.Len(); got != 1 {
		t.Fatalf("Len() = %d after failed add, want 1 (state untouched)", got)
	}
}

func TestCoursesPropagatedMutationFailure(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.CourseModes{Add: collections.Propagate})

	srv.FailNext("POST", "/courses/add", 1)
	err := store.OnAdd(ctx, models.CreateCourse{CourseCode: "X", CourseName: "X", Semester: 1, AcademicYear: 2025})
	if err == nil {
		t.Fatal("OnAdd returned nil in propagate mode, want error")
	}
}

func TestCoursesForStaff(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, session := newSDK(t, srv)

	staff := srv.SeedUser("Marko", "Stojanov", "marko@finki.edu", "pw", enums.RoleStaff)
	assigned := srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	srv.SeedCourse("F23L2S112", "Operating Systems", 4, 2025)
	srv.SeedAssignment(staff.ID, assigned.ID, enums.StaffProfessor)

	login(t, session, "marko@finki.edu", "pw")

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	courses, err := store.ForStaff(ctx)
	if err != nil {
		t.Fatalf("ForStaff: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != assigned.ID {
		t.Fatalf("ForStaff() = %+v, want only course %d", courses, assigned.ID)
	}
}

func TestCoursesForStaffPropagatesFailure(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, session := newSDK(t, srv)

	srv.SeedUser("Marko", "Stojanov", "marko@finki.edu", "pw", enums.RoleStaff)
	login(t, session, "marko@finki.edu", "pw")

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	srv.FailNext("GET", "/courses/for-staff", 1)
	if _, err := store.ForStaff(ctx); err == nil {
		t.Fatal("ForStaff returned nil error, want propagated failure")
	}
}

func TestCoursesForStudent(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, session := newSDK(t, srv)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	st := srv.SeedStudent(u.ID, "201234", "KNI")
	enrolled := srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	srv.SeedCourse("F23L2S112", "Operating Systems", 4, 2025)
	srv.SeedEnrollment(st.ID, enrolled.ID)

	login(t, session, "ana@finki.edu", "pw")

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	courses, err := store.ForStudent(ctx)
	if err != nil {
		t.Fatalf("ForStudent: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != enrolled.ID {
		t.Fatalf("ForStudent() = %+v, want only course %d", courses, enrolled.ID)
	}
}

func TestCourseRosterExportImportIdempotent(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	ua := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	ub := srv.SeedUser("Bojan", "Iliev", "bojan@finki.edu", "pw", enums.RoleStudent)
	sa := srv.SeedStudent(ua.ID, "201234", "KNI")
	sb := srv.SeedStudent(ub.ID, "201567", "SIIS")

	source := srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	target := srv.SeedCourse("F23L2S112", "Operating Systems", 4, 2025)
	srv.SeedEnrollment(sa.ID, source.ID)
	srv.SeedEnrollment(sb.ID, source.ID)

	ctx := context.Background()
	store := collections.NewCourses(ctx, repos, collections.DefaultCourseModes())

	blob := store.ExportEnrolledStudentsCSV(ctx, source.ID)
	if blob == nil {
		t.Fatal("ExportEnrolledStudentsCSV returned nil blob")
	}

	if err := store.ImportEnrolledStudentsCSV(ctx, target.ID, "roster.csv", blob); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := srv.EnrollmentCount(target.ID); got != 2 {
		t.Fatalf("target enrollment count = %d after import, want 2", got)
	}

	// Importing the same roster again adds nothing
	if err := store.ImportEnrolledStudentsCSV(ctx, target.ID, "roster.csv", blob); err != nil {
		t.Fatalf("second import: %v", err)
	}
	if got := srv.EnrollmentCount(target.ID); got != 2 {
		t.Fatalf("target enrollment count = %d after repeated import, want 2", got)
	}
}

func TestExamRegistrationAppearsInRegistrantSet(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, session := newSDK(t, srv)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	srv.SeedStudent(u.ID, "201234", "KNI")
	course := srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	exam := srv.SeedExam(course.ID, "January 2026", models.NewDate(2026, 1, 20), 120, "Lab 1")

	login(t, session, "ana@finki.edu", "pw")

	ctx := context.Background()
	store := collections.NewExams(ctx, repos, collections.ExamModes{Register: collections.Propagate})

	if err := store.Register(ctx, exam.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	regs := store.RegisteredStudents(ctx, exam.ID)
	if len(regs) != 1 {
		t.Fatalf("RegisteredStudents() has %d entries, want 1", len(regs))
	}
	if regs[0].StudentIndex != "201234" {
		t.Fatalf("registration carries index %q, want 201234", regs[0].StudentIndex)
	}
	if regs[0].ExamStatus != enums.ExamRegistered {
		t.Fatalf("registration status = %s, want %s", regs[0].ExamStatus, enums.ExamRegistered)
	}

	// Registering twice is rejected by the backend
	if err := store.Register(ctx, exam.ID); err == nil {
		t.Fatal("second Register returned nil, want conflict error")
	}
}

func TestExamAttendanceImportSplitsStatuses(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, session := newSDK(t, srv)

	ua := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	ub := srv.SeedUser("Bojan", "Iliev", "bojan@finki.edu", "pw", enums.RoleStudent)
	srv.SeedStudent(ua.ID, "201234", "KNI")
	srv.SeedStudent(ub.ID, "201567", "SIIS")
	course := srv.SeedCourse("F23L3S012", "Web Based Systems", 5, 2025)
	exam := srv.SeedExam(course.ID, "January 2026", models.NewDate(2026, 1, 20), 120)

	ctx := context.Background()
	store := collections.NewExams(ctx, repos, collections.ExamModes{Register: collections.Propagate})

	login(t, session, "ana@finki.edu", "pw")
	if err := store.Register(ctx, exam.ID); err != nil {
		t.Fatalf("register ana: %v", err)
	}
	login(t, session, "bojan@finki.edu", "pw")
	if err := store.Register(ctx, exam.ID); err != nil {
		t.Fatalf("register bojan: %v", err)
	}

	// Only Ana appears on the attendance sheet
	sheet := []byte("studentIndex,firstName,lastName\n201234,Ana,Petrovska\n")
	if err := store.ImportAttendedStudentsCSV(ctx, exam.ID, "attendance.csv", sheet); err != nil {
		t.Fatalf("import attendance: %v", err)
	}

	attended := store.AttendedStudents(ctx, exam.ID)
	if len(attended) != 1 || attended[0].StudentIndex != "201234" {
		t.Fatalf("AttendedStudents() = %+v, want only 201234", attended)
	}
	absent := store.AbsentStudents(ctx, exam.ID)
	if len(absent) != 1 || absent[0].StudentIndex != "201567" {
		t.Fatalf("AbsentStudents() = %+v, want only 201567", absent)
	}
}

func TestUsersAddPropagatesConflict(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleUser)

	ctx := context.Background()
	store := collections.NewUsers(ctx, repos, collections.DefaultUserModes())

	created, err := store.OnAdd(ctx, models.CreateUser{
		FirstName: "Bojan",
		LastName:  "Iliev",
		Email:     "bojan@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleUser,
	})
	if err != nil {
		t.Fatalf("OnAdd: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatalf("OnAdd returned %+v, want created row with id", created)
	}

	// Duplicate email: the default modes re-throw add failures
	_, err = store.OnAdd(ctx, models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleUser,
	})
	if err == nil {
		t.Fatal("OnAdd with duplicate email returned nil, want error")
	}
}

func TestStudentsDeleteWithAndWithoutUser(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	ua := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	ub := srv.SeedUser("Bojan", "Iliev", "bojan@finki.edu", "pw", enums.RoleStudent)
	sa := srv.SeedStudent(ua.ID, "201234", "KNI")
	sb := srv.SeedStudent(ub.ID, "201567", "SIIS")

	ctx := context.Background()
	store := collections.NewStudents(ctx, repos, collections.StudentModes{Delete: collections.Propagate})

	if err := store.OnDeleteWithUser(ctx, sa.ID); err != nil {
		t.Fatalf("OnDeleteWithUser: %v", err)
	}
	if _, ok := srv.UserByEmail("ana@finki.edu"); ok {
		t.Fatal("user survived delete-with-user")
	}

	if err := store.OnDeleteWithoutUser(ctx, sb.ID); err != nil {
		t.Fatalf("OnDeleteWithoutUser: %v", err)
	}
	if _, ok := srv.UserByEmail("bojan@finki.edu"); !ok {
		t.Fatal("user removed by delete-without-user")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("Len() = %d after deletes, want 0", got)
	}
}

func TestUsersImportCreatesStudentProfiles(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	repos, _ := newSDK(t, srv)

	ctx := context.Background()
	store := collections.NewUsers(ctx, repos, collections.DefaultUserModes())

	csv := []byte("firstName,lastName,email,password,userRole,studentIndex,major\n" +
		"Ana,Petrovska,ana@finki.edu,pw,STUDENT,201234,KNI\n" +
		"Marko,Stojanov,marko@finki.edu,pw,STAFF,,\n")
	if err := store.ImportUsers(ctx, "users.csv", csv); err != nil {
		t.Fatalf("ImportUsers: %v", err)
	}

	if got := store.Len(); got != 2 {
		t.Fatalf("Len() = %d after import, want 2", got)
	}
	if _, ok := srv.StudentByIndex("201234"); !ok {
		t.Fatal("student profile not created for imported STUDENT row")
	}
	u, ok := srv.UserByEmail("marko@finki.edu")
	if !ok || u.UserRole != enums.RoleStaff {
		t.Fatalf("imported staff user = %+v, ok=%v", u, ok)
	}
}
