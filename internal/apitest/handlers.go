package apitest

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/finki-emc/aas-client/internal/app/csvfile"
	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// registerRoutes wires the REST surface the SDK consumes
func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/courses", s.listCourses)
	r.GET("/courses/for-staff", s.coursesForStaff)
	r.GET("/courses/for-student", s.coursesForStudent)
	r.GET("/courses/:id", s.getCourse)
	r.POST("/courses/add", s.addCourse)
	r.PUT("/courses/:id/edit", s.editCourse)
	r.DELETE("/courses/:id/delete", s.deleteCourse)
	r.GET("/courses/:id/export", s.exportEnrolledStudents)
	r.POST("/courses/:id/import", s.importEnrolledStudents)
	r.GET("/courses/:id/enrolled-students", s.enrolledStudents)
	r.GET("/courses/:id/assigned-staff", s.assignedStaff)

	r.GET("/exams", s.listExams)
	r.GET("/exams/:id", s.getExam)
	r.POST("/exams/add", s.addExam)
	r.PUT("/exams/:id/edit", s.editExam)
	r.DELETE("/exams/:id/delete", s.deleteExam)
	r.POST("/exams/:id/register", s.registerForExam)
	r.GET("/exams/:id/registered-students", s.registrationsByStatus(""))
	r.GET("/exams/:id/registered-students/export", s.exportRegistrations(""))
	r.GET("/exams/:id/attended-students", s.registrationsByStatus(enums.ExamAttended))
	r.GET("/exams/:id/attended-students/export", s.exportRegistrations(enums.ExamAttended))
	r.POST("/exams/:id/attended-students/import", s.importAttendedStudents)
	r.GET("/exams/:id/absent-students", s.registrationsByStatus(enums.ExamAbsent))
	r.GET("/exams/:id/absent-students/export", s.exportRegistrations(enums.ExamAbsent))

	r.GET("/students", s.listStudents)
	r.GET("/students/:id", s.getStudent)
	r.POST("/students/add", s.addStudent)
	r.PUT("/students/:id/edit", s.editStudent)
	r.DELETE("/students/:id/delete-with-user", s.deleteStudentWithUser)
	r.DELETE("/students/:id/delete-without-user", s.deleteStudentWithoutUser)
	r.GET("/students/:id/exam-registrations", s.studentExamRegistrations)
	r.GET("/students/:id/course-enrollments", s.studentCourseEnrollments)

	r.GET("/users", s.listUsers)
	r.GET("/users/me", s.me)
	r.GET("/users/export", s.exportUsers)
	r.GET("/users/:id", s.getUser)
	r.POST("/users/add", s.addUser)
	r.PUT("/users/:id/edit", s.editUser)
	r.DELETE("/users/:id/delete", s.deleteUser)
	r.POST("/users/register", s.registerUser)
	r.POST("/users/login", s.loginUser)
	r.POST("/users/import", s.importUsers)
	r.POST("/users/password-reset/request", s.requestPasswordReset)
	r.POST("/users/password-reset/confirm", s.confirmPasswordReset)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func readUpload(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return nil, false
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unreadable file"})
		return nil, false
	}
	defer f.Close()

	buf := make([]byte, file.Size)
	n, _ := f.Read(buf)
	return buf[:n], true
}

// -- courses --

func (s *Server) listCourses(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		out = append(out, *course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	course, exists := s.courses[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	c.JSON(http.StatusOK, *course)
}

func (s *Server) addCourse(c *gin.Context) {
	var payload models.CreateCourse
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	course := &models.Course{
		ID:           s.id(),
		CourseCode:   payload.CourseCode,
		CourseName:   payload.CourseName,
		Semester:     payload.Semester,
		AcademicYear: payload.AcademicYear,
	}
	s.courses[course.ID] = course
	c.JSON(http.StatusCreated, *course)
}

func (s *Server) editCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload models.CreateCourse
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	course, exists := s.courses[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	course.CourseCode = payload.CourseCode
	course.CourseName = payload.CourseName
	course.Semester = payload.Semester
	course.AcademicYear = payload.AcademicYear
	c.JSON(http.StatusOK, *course)
}

func (s *Server) deleteCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.courses[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	delete(s.courses, id)
	for eid, e := range s.enrollments {
		if e.CourseID == id {
			delete(s.enrollments, eid)
		}
	}
	for aid, a := range s.assignments {
		if a.CourseID == id {
			delete(s.assignments, aid)
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) coursesForStaff(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	out := []models.Course{}
	for _, a := range s.assignments {
		if a.UserID != u.ID {
			continue
		}
		if course, ok := s.courses[a.CourseID]; ok {
			out = append(out, *course)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) coursesForStudent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var studentID int64
	for _, st := range s.students {
		if st.UserID == u.ID {
			studentID = st.ID
		}
	}

	out := []models.Course{}
	for _, e := range s.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if course, ok := s.courses[e.CourseID]; ok {
			out = append(out, *course)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) enrolledStudents(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CourseEnrollment{}
	for _, e := range s.enrollments {
		if e.CourseID == id {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) assignedStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CourseStaffAssignment{}
	for _, a := range s.assignments {
		if a.CourseID == id {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) exportEnrolledStudents(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rosterForCourse(id)
	blob, err := csvfile.EncodeRosterRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/csv", blob)
}

// rosterForCourse builds roster rows for a course; callers hold the mutex
func (s *Server) rosterForCourse(courseID int64) []csvfile.RosterRow {
	var rows []csvfile.RosterRow
	for _, e := range s.enrollments {
		if e.CourseID != courseID {
			continue
		}
		st, ok := s.students[e.StudentID]
		if !ok {
			continue
		}
		rows = append(rows, csvfile.RosterRow{
			StudentIndex: st.StudentIndex,
			FirstName:    st.StudentFirstName,
			LastName:     st.StudentLastName,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentIndex < rows[j].StudentIndex })
	return rows
}

func (s *Server) importEnrolledStudents(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	data, ok := readUpload(c)
	if !ok {
		return
	}

	rows, err := csvfile.DecodeRosterRows(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		for _, st := range s.students {
			if st.StudentIndex == row.StudentIndex {
				s.addEnrollment(st.ID, id)
			}
		}
	}
	c.Status(http.StatusOK)
}

// -- exams --

func (s *Server) listExams(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Exam, 0, len(s.exams))
	for _, exam := range s.exams {
		out = append(out, *exam)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getExam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exam, exists := s.exams[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}
	c.JSON(http.StatusOK, *exam)
}

func (s *Server) addExam(c *gin.Context) {
	var payload models.CreateExam
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exam := &models.Exam{
		ID:                   s.id(),
		Session:              payload.Session,
		DateOfExam:           payload.DateOfExam,
		StartTime:            payload.StartTime,
		EndTime:              payload.EndTime,
		CapacityOfStudents:   payload.CapacityOfStudents,
		ReservedLaboratories: payload.ReservedLaboratories,
	}
	if course, ok := s.courses[payload.CourseID]; ok {
		exam.Course = models.ExamCourse{ID: course.ID, CourseCode: course.CourseCode, CourseName: course.CourseName}
	}
	s.exams[exam.ID] = exam
	c.JSON(http.StatusCreated, *exam)
}

func (s *Server) editExam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload models.CreateExam
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exam, exists := s.exams[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}
	exam.Session = payload.Session
	exam.DateOfExam = payload.DateOfExam
	exam.StartTime = payload.StartTime
	exam.EndTime = payload.EndTime
	exam.CapacityOfStudents = payload.CapacityOfStudents
	exam.ReservedLaboratories = payload.ReservedLaboratories
	c.JSON(http.StatusOK, *exam)
}

func (s *Server) deleteExam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.exams[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}
	delete(s.exams, id)
	for rid, reg := range s.registrations {
		if reg.ExamID == id {
			delete(s.registrations, rid)
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) registerForExam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	exam, exists := s.exams[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}

	var student *models.Student
	for _, st := range s.students {
		if st.UserID == u.ID {
			student = st
		}
	}
	if student == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no student profile"})
		return
	}

	for _, reg := range s.registrations {
		if reg.ExamID == id && reg.StudentID == student.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "already registered"})
			return
		}
	}

	reg := &models.StudentExamRegistration{
		ID:           s.id(),
		StudentID:    student.ID,
		ExamID:       id,
		ExamStatus:   enums.ExamRegistered,
		StudentIndex: student.StudentIndex,
		ExamCourse:   exam.Course.CourseName,
		ExamSession:  exam.Session,
		ExamDate:     exam.DateOfExam,
		StartTime:    exam.StartTime,
	}
	s.registrations[reg.ID] = reg
	c.JSON(http.StatusCreated, *reg)
}

// registrationsByStatus lists an exam's registrations, optionally filtered.
// The empty status means the whole registrant set.
func (s *Server) registrationsByStatus(status enums.ExamStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		out := []models.StudentExamRegistration{}
		for _, reg := range s.registrations {
			if reg.ExamID != id {
				continue
			}
			if status != "" && reg.ExamStatus != status {
				continue
			}
			out = append(out, *reg)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) exportRegistrations(status enums.ExamStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		var rows []csvfile.RosterRow
		for _, reg := range s.registrations {
			if reg.ExamID != id {
				continue
			}
			if status != "" && reg.ExamStatus != status {
				continue
			}
			st, ok := s.students[reg.StudentID]
			if !ok {
				continue
			}
			rows = append(rows, csvfile.RosterRow{
				StudentIndex: st.StudentIndex,
				FirstName:    st.StudentFirstName,
				LastName:     st.StudentLastName,
			})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].StudentIndex < rows[j].StudentIndex })

		blob, err := csvfile.EncodeRosterRows(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/csv", blob)
	}
}

func (s *Server) importAttendedStudents(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	data, ok := readUpload(c)
	if !ok {
		return
	}

	rows, err := csvfile.DecodeRosterRows(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attended := make(map[string]bool, len(rows))
	for _, row := range rows {
		attended[row.StudentIndex] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.registrations {
		if reg.ExamID != id {
			continue
		}
		if attended[reg.StudentIndex] {
			reg.ExamStatus = enums.ExamAttended
		} else if reg.ExamStatus == enums.ExamRegistered {
			reg.ExamStatus = enums.ExamAbsent
		}
	}
	c.Status(http.StatusOK)
}

// -- students --

func (s *Server) listStudents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, exists := s.students[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, *st)
}

func (s *Server) addStudent(c *gin.Context) {
	var payload models.CreateStudent
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[payload.UserID]
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "linked user not found"})
		return
	}

	st := &models.Student{
		ID:               s.id(),
		StudentIndex:     payload.StudentIndex,
		Major:            payload.Major,
		UserID:           payload.UserID,
		StudentFirstName: u.FirstName,
		StudentLastName:  u.LastName,
		StudentEmail:     u.Email,
	}
	s.students[st.ID] = st
	c.JSON(http.StatusCreated, *st)
}

func (s *Server) editStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload models.CreateStudent
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, exists := s.students[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	st.StudentIndex = payload.StudentIndex
	st.Major = payload.Major
	c.JSON(http.StatusOK, *st)
}

// deleteStudentRows removes a student and optionally the linked user; callers hold the mutex
func (s *Server) deleteStudentRows(id int64, withUser bool) bool {
	st, exists := s.students[id]
	if !exists {
		return false
	}
	delete(s.students, id)
	for rid, reg := range s.registrations {
		if reg.StudentID == id {
			delete(s.registrations, rid)
		}
	}
	for eid, e := range s.enrollments {
		if e.StudentID == id {
			delete(s.enrollments, eid)
		}
	}
	if withUser {
		delete(s.users, st.UserID)
	}
	return true
}

func (s *Server) deleteStudentWithUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deleteStudentRows(id, true) {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteStudentWithoutUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deleteStudentRows(id, false) {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) studentExamRegistrations(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.StudentExamRegistration{}
	for _, reg := range s.registrations {
		if reg.StudentID == id {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) studentCourseEnrollments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CourseEnrollment{}
	for _, e := range s.enrollments {
		if e.StudentID == id {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

// -- users --

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u.User)
}

func (s *Server) addUser(c *gin.Context) {
	var payload models.CreateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == payload.Email {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
	u := &userRecord{
		User: models.User{
			ID:        s.id(),
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			UserRole:  payload.UserRole,
		},
		passwordHash: hash,
	}
	s.users[u.ID] = u
	c.JSON(http.StatusCreated, u.User)
}

func (s *Server) editUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload models.CreateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	u.FirstName = payload.FirstName
	u.LastName = payload.LastName
	u.Email = payload.Email
	u.UserRole = payload.UserRole
	c.JSON(http.StatusOK, u.User)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	delete(s.users, id)
	for sid, st := range s.students {
		if st.UserID == id {
			s.deleteStudentRows(sid, false)
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	profile := models.MyProfile{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		UserRole:  u.UserRole,
	}
	for _, st := range s.students {
		if st.UserID == u.ID {
			id := st.ID
			profile.StudentID = &id
			profile.StudentIndex = st.StudentIndex
			profile.Major = st.Major
			for _, e := range s.enrollments {
				if e.StudentID == st.ID {
					profile.AsStudent = append(profile.AsStudent, *e)
				}
			}
		}
	}
	for _, a := range s.assignments {
		if a.UserID == u.ID {
			id := a.ID
			profile.StaffID = &id
			profile.StaffRole = string(a.StaffRole)
			profile.AsStaff = append(profile.AsStaff, *a)
		}
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) registerUser(c *gin.Context) {
	var payload models.RegisterUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.UserRole == "" {
		payload.UserRole = enums.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == payload.Email {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
	u := &userRecord{
		User: models.User{
			ID:        s.id(),
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			UserRole:  payload.UserRole,
		},
		passwordHash: hash,
	}
	s.users[u.ID] = u
	c.JSON(http.StatusCreated, u.User)
}

func (s *Server) loginUser(c *gin.Context) {
	var payload models.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email != payload.Email {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(payload.Password)) != nil {
			break
		}
		token, err := s.issueToken(u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, models.LoginResponse{Token: token})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
}

func (s *Server) importUsers(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}

	rows, err := csvfile.DecodeUserRows(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		exists := false
		for _, u := range s.users {
			if u.Email == row.Email {
				exists = true
			}
		}
		if exists {
			continue
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.MinCost)
		u := &userRecord{
			User: models.User{
				ID:        s.id(),
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
				UserRole:  row.UserRole,
			},
			passwordHash: hash,
		}
		s.users[u.ID] = u

		if row.UserRole == enums.RoleStudent && row.StudentIndex != "" {
			st := &models.Student{
				ID:               s.id(),
				StudentIndex:     row.StudentIndex,
				Major:            row.Major,
				UserID:           u.ID,
				StudentFirstName: u.FirstName,
				StudentLastName:  u.LastName,
				StudentEmail:     u.Email,
			}
			s.students[st.ID] = st
		}
	}
	c.Status(http.StatusOK)
}

func (s *Server) exportUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []csvfile.UserRow
	for _, id := range ids {
		u := s.users[id]
		row := csvfile.UserRow{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			UserRole:  u.UserRole,
		}
		for _, st := range s.students {
			if st.UserID == u.ID {
				row.StudentIndex = st.StudentIndex
				row.Major = st.Major
			}
		}
		rows = append(rows, row)
	}

	blob, err := csvfile.EncodeUserRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/csv", blob)
}

func (s *Server) requestPasswordReset(c *gin.Context) {
	var payload models.PasswordResetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == payload.Email {
			s.resetTokens["reset-"+payload.Email] = u.ID
		}
	}
	// Same answer whether or not the email exists
	c.Status(http.StatusOK)
}

func (s *Server) confirmPasswordReset(c *gin.Context) {
	var payload models.PasswordResetConfirm
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resetTokens[payload.Token]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
		return
	}
	delete(s.resetTokens, payload.Token)

	if u, exists := s.users[id]; exists {
		hash, _ := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.MinCost)
		u.passwordHash = hash
	}
	c.Status(http.StatusOK)
}
