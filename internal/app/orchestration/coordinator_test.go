package orchestration_test

import (
	"context"
	"testing"

	"github.com/finki-emc/aas-client/internal/apitest"
	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
	"github.com/finki-emc/aas-client/internal/app/orchestration"
	"github.com/finki-emc/aas-client/internal/app/repositories"
)

func newCoordinator(t *testing.T, srv *apitest.Server, policy orchestration.CompensationPolicy) (*orchestration.Coordinator, *repositories.Repositories) {
	t.Helper()
	c := client.New(srv.URL(), func() string { return "" })
	repos := repositories.NewRepositories(c)
	return orchestration.NewCoordinator(repos.User, repos.Student, policy), repos
}

func TestCreateUserWithProfile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	user, err := coord.CreateUserWithProfile(context.Background(), models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleStudent,
	}, orchestration.StudentProfile{StudentIndex: "201234", Major: "KNI"})
	if err != nil {
		t.Fatalf("CreateUserWithProfile: %v", err)
	}

	st, ok := srv.StudentByIndex("201234")
	if !ok {
		t.Fatal("student profile was not created")
	}
	if st.UserID != user.ID {
		t.Fatalf("student linked to user %d, want %d", st.UserID, user.ID)
	}
}

func TestCreateUserWithoutProfileData(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	// STUDENT role but no index: only the user row is created
	user, err := coord.CreateUserWithProfile(context.Background(), models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleStudent,
	}, orchestration.StudentProfile{})
	if err != nil {
		t.Fatalf("CreateUserWithProfile: %v", err)
	}
	if got := srv.StudentCountForUser(user.ID); got != 0 {
		t.Fatalf("student count = %d, want 0", got)
	}
}

func TestCreateNonStudentIgnoresProfile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	user, err := coord.CreateUserWithProfile(context.Background(), models.CreateUser{
		FirstName: "Marko",
		LastName:  "Stojanov",
		Email:     "marko@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleStaff,
	}, orchestration.StudentProfile{StudentIndex: "201234", Major: "KNI"})
	if err != nil {
		t.Fatalf("CreateUserWithProfile: %v", err)
	}
	if got := srv.StudentCountForUser(user.ID); got != 0 {
		t.Fatalf("student count = %d for staff user, want 0", got)
	}
}

func TestFailedProfileKeepsUser(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	srv.FailNext("POST", "/students/add", 1)

	user, err := coord.CreateUserWithProfile(context.Background(), models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleStudent,
	}, orchestration.StudentProfile{StudentIndex: "201234", Major: "KNI"})

	if err == nil {
		t.Fatal("want error when the student create fails")
	}
	if user == nil {
		t.Fatal("keep policy should still return the created user")
	}

	// The user row survives without a student profile
	if _, ok := srv.UserByEmail("ana@finki.edu"); !ok {
		t.Fatal("user row was removed under keep policy")
	}
	if got := srv.StudentCountForUser(user.ID); got != 0 {
		t.Fatalf("student count = %d, want 0", got)
	}
}

func TestFailedProfileRollsBackUser(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationRollback)

	srv.FailNext("POST", "/students/add", 1)

	user, err := coord.CreateUserWithProfile(context.Background(), models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		Password:  "pw",
		UserRole:  enums.RoleStudent,
	}, orchestration.StudentProfile{StudentIndex: "201234", Major: "KNI"})

	if err == nil {
		t.Fatal("want error when the student create fails")
	}
	if user != nil {
		t.Fatalf("rollback policy returned user %+v, want nil", user)
	}
	if _, ok := srv.UserByEmail("ana@finki.edu"); ok {
		t.Fatal("user row survived under rollback policy")
	}
}

func TestUpdateUserRoleChangeCreatesProfile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleUser)

	err := coord.UpdateUser(context.Background(), u.ID, models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		UserRole:  enums.RoleStudent,
	}, enums.RoleUser, orchestration.StudentProfile{StudentIndex: "201234", Major: "KNI"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	updated, _ := srv.UserByEmail("ana@finki.edu")
	if updated.UserRole != enums.RoleStudent {
		t.Fatalf("role = %s after update, want STUDENT", updated.UserRole)
	}
	if got := srv.StudentCountForUser(u.ID); got != 1 {
		t.Fatalf("student count = %d after role change, want 1", got)
	}
}

func TestUpdateUserSameRoleSkipsProfile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	srv.SeedStudent(u.ID, "201234", "KNI")

	// Already a student: editing must not create a second profile
	err := coord.UpdateUser(context.Background(), u.ID, models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		UserRole:  enums.RoleStudent,
	}, enums.RoleStudent, orchestration.StudentProfile{StudentIndex: "201234", Major: "KNI"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got := srv.StudentCountForUser(u.ID); got != 1 {
		t.Fatalf("student count = %d, want 1", got)
	}
}

func TestUpdateStudentRoleAwayDropsProfile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	st := srv.SeedStudent(u.ID, "201234", "KNI")

	err := coord.UpdateStudent(context.Background(), st, models.CreateStudent{
		StudentIndex: "201234",
		Major:        "KNI",
		UserID:       u.ID,
	}, models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		UserRole:  enums.RoleStaff,
	})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}

	// The profile is gone, the user stays with its new role
	if got := srv.StudentCountForUser(u.ID); got != 0 {
		t.Fatalf("student count = %d after role change, want 0", got)
	}
	updated, ok := srv.UserByEmail("ana@finki.edu")
	if !ok || updated.UserRole != enums.RoleStaff {
		t.Fatalf("user = %+v, ok=%v; want surviving STAFF user", updated, ok)
	}
}

func TestUpdateStudentEditsProfile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	st := srv.SeedStudent(u.ID, "201234", "KNI")

	err := coord.UpdateStudent(context.Background(), st, models.CreateStudent{
		StudentIndex: "201234",
		Major:        "SIIS",
		UserID:       u.ID,
	}, models.CreateUser{
		FirstName: "Ana",
		LastName:  "Petrovska",
		Email:     "ana@finki.edu",
		UserRole:  enums.RoleStudent,
	})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}

	updated, ok := srv.StudentByIndex("201234")
	if !ok || updated.Major != "SIIS" {
		t.Fatalf("student = %+v, ok=%v; want major SIIS", updated, ok)
	}
}

func TestDeleteStudentCascade(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	st := srv.SeedStudent(u.ID, "201234", "KNI")

	if err := coord.DeleteStudentCascade(context.Background(), st.ID); err != nil {
		t.Fatalf("DeleteStudentCascade: %v", err)
	}
	if _, ok := srv.UserByEmail("ana@finki.edu"); ok {
		t.Fatal("user survived cascade delete")
	}
}

func TestDeleteStudentKeepUser(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	coord, _ := newCoordinator(t, srv, orchestration.CompensationKeep)

	u := srv.SeedUser("Ana", "Petrovska", "ana@finki.edu", "pw", enums.RoleStudent)
	st := srv.SeedStudent(u.ID, "201234", "KNI")

	if err := coord.DeleteStudentKeepUser(context.Background(), st.ID); err != nil {
		t.Fatalf("DeleteStudentKeepUser: %v", err)
	}
	if _, ok := srv.UserByEmail("ana@finki.edu"); !ok {
		t.Fatal("user removed by profile-only delete")
	}
	if got := srv.StudentCountForUser(u.ID); got != 0 {
		t.Fatalf("student count = %d, want 0", got)
	}
}
