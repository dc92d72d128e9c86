package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

func TestExportName(t *testing.T) {
	tests := []struct {
		entity, code, kind string
		want               string
	}{
		{"course", "F23L3S012", "enrolled", "course_F23L3S012_enrolled.csv"},
		{"exam", "7", "attended", "exam_7_attended.csv"},
		{"users", "all", "accounts", "users_all_accounts.csv"},
	}
	for _, tc := range tests {
		if got := ExportName(tc.entity, tc.code, tc.kind); got != tc.want {
			t.Errorf("ExportName(%s, %s, %s) = %s, want %s", tc.entity, tc.code, tc.kind, got, tc.want)
		}
	}
}

func TestSaveWritesBlob(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	blob := []byte("studentIndex,firstName,lastName\n201234,Ana,Petrovska\n")

	path, err := Save(dir, "course_F23L3S012_enrolled.csv", blob)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != string(blob) {
		t.Fatalf("saved content = %q, want %q", data, blob)
	}
}

func TestUserRowsRoundTrip(t *testing.T) {
	rows := []UserRow{
		{FirstName: "Ana", LastName: "Petrovska", Email: "ana@finki.edu", Password: "pw", UserRole: enums.RoleStudent, StudentIndex: "201234", Major: "KNI"},
		{FirstName: "Marko", LastName: "Stojanov", Email: "marko@finki.edu", Password: "pw", UserRole: enums.RoleStaff},
	}

	blob, err := EncodeUserRows(rows)
	if err != nil {
		t.Fatalf("EncodeUserRows: %v", err)
	}

	decoded, err := DecodeUserRows(blob)
	if err != nil {
		t.Fatalf("DecodeUserRows: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d rows, want 2", len(decoded))
	}
	if decoded[0] != rows[0] {
		t.Errorf("row 0 = %+v, want %+v", decoded[0], rows[0])
	}
	if decoded[1].UserRole != enums.RoleStaff || decoded[1].StudentIndex != "" {
		t.Errorf("row 1 = %+v, want staff row without student fields", decoded[1])
	}
}

func TestDecodeUserRowsTolerantInput(t *testing.T) {
	// Header, a blank line and trailing whitespace-only line are all skipped
	blob := []byte("firstName,lastName,email,password,userRole,studentIndex,major\n" +
		"\n" +
		"Ana,Petrovska,ana@finki.edu,pw,STUDENT,201234,KNI\n" +
		"\n")

	rows, err := DecodeUserRows(blob)
	if err != nil {
		t.Fatalf("DecodeUserRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Email != "ana@finki.edu" {
		t.Fatalf("rows = %+v, want single ana row", rows)
	}
}

func TestDecodeUserRowsShortRecord(t *testing.T) {
	blob := []byte("Ana,Petrovska,ana@finki.edu\n")
	if _, err := DecodeUserRows(blob); err == nil {
		t.Fatal("want error for record with missing fields")
	}
}

func TestRosterRowsRoundTrip(t *testing.T) {
	rows := []RosterRow{
		{StudentIndex: "201234", FirstName: "Ana", LastName: "Petrovska"},
		{StudentIndex: "201567", FirstName: "Bojan", LastName: "Iliev"},
	}

	blob, err := EncodeRosterRows(rows)
	if err != nil {
		t.Fatalf("EncodeRosterRows: %v", err)
	}
	decoded, err := DecodeRosterRows(blob)
	if err != nil {
		t.Fatalf("DecodeRosterRows: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != rows[0] || decoded[1] != rows[1] {
		t.Fatalf("decoded = %+v, want %+v", decoded, rows)
	}
}

func TestDecodeRosterRowsIndexOnly(t *testing.T) {
	// Attendance sheets may carry the index column alone
	blob := []byte("studentIndex\n201234\n201567\n")

	rows, err := DecodeRosterRows(blob)
	if err != nil {
		t.Fatalf("DecodeRosterRows: %v", err)
	}
	if len(rows) != 2 || rows[0].StudentIndex != "201234" || rows[1].StudentIndex != "201567" {
		t.Fatalf("rows = %+v, want two index-only rows", rows)
	}
}

func TestDecodeRosterRowsMissingIndex(t *testing.T) {
	blob := []byte("studentIndex,firstName,lastName\n,Ana,Petrovska\n")
	if _, err := DecodeRosterRows(blob); err == nil {
		t.Fatal("want error for roster row without an index")
	}
}
