// Package apitest provides an in-process fake of the Academic Assessment
// System backend. Tests run the SDK against it over real HTTP.
package apitest

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// userRecord pairs the public user shape with its password hash
type userRecord struct {
	models.User
	passwordHash []byte
}

// Server is the fake backend. All state lives in memory behind one mutex.
type Server struct {
	mu sync.Mutex

	users         map[int64]*userRecord
	students      map[int64]*models.Student
	courses       map[int64]*models.Course
	exams         map[int64]*models.Exam
	enrollments   map[int64]*models.CourseEnrollment
	registrations map[int64]*models.StudentExamRegistration
	assignments   map[int64]*models.CourseStaffAssignment
	resetTokens   map[string]int64

	nextID   int64
	failures map[string]int

	jwtSecret []byte
	http      *httptest.Server
}

// NewServer starts a fake backend on an httptest listener
func NewServer() *Server {
	s := &Server{
		users:         make(map[int64]*userRecord),
		students:      make(map[int64]*models.Student),
		courses:       make(map[int64]*models.Course),
		exams:         make(map[int64]*models.Exam),
		enrollments:   make(map[int64]*models.CourseEnrollment),
		registrations: make(map[int64]*models.StudentExamRegistration),
		assignments:   make(map[int64]*models.CourseStaffAssignment),
		resetTokens:   make(map[string]int64),
		failures:      make(map[string]int),
		jwtSecret:     []byte("apitest-signing-key"),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.failureMiddleware())
	s.registerRoutes(router)

	s.http = httptest.NewServer(router)
	return s
}

// URL returns the base URL of the fake backend
func (s *Server) URL() string {
	return s.http.URL
}

// Close shuts the fake backend down
func (s *Server) Close() {
	s.http.Close()
}

// FailNext makes the next n requests matching method and path fail with a 500
func (s *Server) FailNext(method, path string, n int) {
	s.mu.Lock()
	s.failures[method+" "+path] = n
	s.mu.Unlock()
}

// failureMiddleware serves injected failures before any handler runs
func (s *Server) failureMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.Request.URL.Path
		s.mu.Lock()
		remaining, ok := s.failures[key]
		if ok && remaining > 0 {
			s.failures[key] = remaining - 1
			s.mu.Unlock()
			c.AbortWithStatusJSON(500, gin.H{"error": "injected failure"})
			return
		}
		s.mu.Unlock()
		c.Next()
	}
}

// id hands out the next identifier; callers hold the mutex
func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// issueToken signs a JWT carrying the claims the console inspects
func (s *Server) issueToken(u *userRecord) (string, error) {
	claims := jwt.MapClaims{
		"sub":    fmt.Sprintf("%d", u.ID),
		"userId": u.ID,
		"email":  u.Email,
		"role":   string(u.UserRole),
		"exp":    time.Now().Add(time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// currentUser resolves the bearer token on the request; callers hold the mutex
func (s *Server) currentUser(c *gin.Context) *userRecord {
	header := c.GetHeader("Authorization")
	if len(header) < 8 || header[:7] != "Bearer " {
		return nil
	}

	token, err := jwt.Parse(header[7:], func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	id, ok := claims["userId"].(float64)
	if !ok {
		return nil
	}
	return s.users[int64(id)]
}

// SeedUser creates a user directly in the store and returns it
func (s *Server) SeedUser(firstName, lastName, email, password string, role enums.UserRole) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &userRecord{
		User: models.User{
			ID:        s.id(),
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			UserRole:  role,
		},
		passwordHash: hash,
	}
	s.users[u.ID] = u
	return u.User
}

// SeedStudent creates a student profile directly in the store
func (s *Server) SeedStudent(userID int64, index, major string) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &models.Student{
		ID:           s.id(),
		StudentIndex: index,
		Major:        major,
		UserID:       userID,
	}
	if u, ok := s.users[userID]; ok {
		st.StudentFirstName = u.FirstName
		st.StudentLastName = u.LastName
		st.StudentEmail = u.Email
	}
	s.students[st.ID] = st
	return *st
}

// SeedCourse creates a course directly in the store
func (s *Server) SeedCourse(code, name string, semester, year int) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := &models.Course{
		ID:           s.id(),
		CourseCode:   code,
		CourseName:   name,
		Semester:     semester,
		AcademicYear: year,
	}
	s.courses[course.ID] = course
	return *course
}

// SeedExam creates an exam directly in the store
func (s *Server) SeedExam(courseID int64, session string, date models.Date, capacity int, labs ...string) models.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.courses[courseID]
	exam := &models.Exam{
		ID:                   s.id(),
		Session:              session,
		DateOfExam:           date,
		StartTime:            models.NewClockTime(10, 0, 0),
		EndTime:              models.NewClockTime(12, 0, 0),
		CapacityOfStudents:   capacity,
		ReservedLaboratories: labs,
	}
	if course != nil {
		exam.Course = models.ExamCourse{ID: course.ID, CourseCode: course.CourseCode, CourseName: course.CourseName}
	}
	s.exams[exam.ID] = exam
	return *exam
}

// SeedEnrollment enrolls a student into a course directly in the store
func (s *Server) SeedEnrollment(studentID, courseID int64) models.CourseEnrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.addEnrollment(studentID, courseID)
}

// SeedAssignment assigns a staff user to a course directly in the store
func (s *Server) SeedAssignment(userID, courseID int64, role enums.StaffRole) models.CourseStaffAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &models.CourseStaffAssignment{
		ID:        s.id(),
		UserID:    userID,
		CourseID:  courseID,
		StaffRole: role,
	}
	if u, ok := s.users[userID]; ok {
		a.FirstName = u.FirstName
		a.LastName = u.LastName
	}
	if course, ok := s.courses[courseID]; ok {
		a.CourseCode = course.CourseCode
	}
	s.assignments[a.ID] = a
	return *a
}

// addEnrollment creates an enrollment unless one already exists; callers hold the mutex
func (s *Server) addEnrollment(studentID, courseID int64) *models.CourseEnrollment {
	for _, e := range s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e
		}
	}

	e := &models.CourseEnrollment{
		ID:        s.id(),
		StudentID: studentID,
		CourseID:  courseID,
	}
	if st, ok := s.students[studentID]; ok {
		e.StudentIndex = st.StudentIndex
	}
	if course, ok := s.courses[courseID]; ok {
		e.CourseCode = course.CourseCode
		e.CourseName = course.CourseName
	}
	s.enrollments[e.ID] = e
	return e
}

// UserByEmail looks a user up for test assertions; ok is false when absent
func (s *Server) UserByEmail(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u.User, true
		}
	}
	return models.User{}, false
}

// StudentByIndex looks a student up for test assertions
func (s *Server) StudentByIndex(index string) (models.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.StudentIndex == index {
			return *st, true
		}
	}
	return models.Student{}, false
}

// StudentCountForUser counts student rows linked to the user id
func (s *Server) StudentCountForUser(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.students {
		if st.UserID == userID {
			n++
		}
	}
	return n
}

// EnrollmentCount counts enrollments for a course
func (s *Server) EnrollmentCount(courseID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n
}
