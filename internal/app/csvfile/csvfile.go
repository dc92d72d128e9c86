// Package csvfile handles the roster and attendance CSV blobs the backend
// exports, and the row format it accepts on import.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/finki-emc/aas-client/internal/app/models/enums"
)

// userHeader is the header line of the users import template
var userHeader = []string{"firstName", "lastName", "email", "password", "userRole", "studentIndex", "major"}

// ExportName builds the save-as filename for an exported blob:
// <entity>_<code>_<kind>.csv
func ExportName(entity, code, kind string) string {
	return fmt.Sprintf("%s_%s_%s.csv", entity, code, kind)
}

// Save writes an exported blob under dir and returns the full path
func Save(dir, name string, blob []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return "", fmt.Errorf("failed to save csv: %w", err)
	}
	return path, nil
}

// UserRow is one line of the users import CSV
type UserRow struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	UserRole     enums.UserRole
	StudentIndex string
	Major        string
}

// EncodeUserRows renders rows into the users import format, header included
func EncodeUserRows(rows []UserRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(userHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{r.FirstName, r.LastName, r.Email, r.Password, string(r.UserRole), r.StudentIndex, r.Major}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// DecodeUserRows parses a users CSV, skipping the header and blank lines
func DecodeUserRows(blob []byte) ([]UserRow, error) {
	r := csv.NewReader(bytes.NewReader(blob))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse users csv: %w", err)
	}

	var rows []UserRow
	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(record[0], "firstName") {
			continue
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if len(record) < 7 {
			return nil, fmt.Errorf("users csv line %d: expected 7 fields, got %d", i+1, len(record))
		}
		rows = append(rows, UserRow{
			FirstName:    record[0],
			LastName:     record[1],
			Email:        record[2],
			Password:     record[3],
			UserRole:     enums.UserRole(record[4]),
			StudentIndex: record[5],
			Major:        record[6],
		})
	}

	return rows, nil
}

// RosterRow is one line of an enrolled-students or attendance CSV
type RosterRow struct {
	StudentIndex string
	FirstName    string
	LastName     string
}

// EncodeRosterRows renders roster rows with a header line
func EncodeRosterRows(rows []RosterRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"studentIndex", "firstName", "lastName"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.StudentIndex, r.FirstName, r.LastName}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// DecodeRosterRows parses a roster CSV, skipping the header and blank lines
func DecodeRosterRows(blob []byte) ([]RosterRow, error) {
	r := csv.NewReader(bytes.NewReader(blob))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster csv: %w", err)
	}

	var rows []RosterRow
	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(record[0], "studentIndex") {
			continue
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if len(record) < 1 || strings.TrimSpace(record[0]) == "" {
			return nil, fmt.Errorf("roster csv line %d: missing student index", i+1)
		}
		row := RosterRow{StudentIndex: record[0]}
		if len(record) > 1 {
			row.FirstName = record[1]
		}
		if len(record) > 2 {
			row.LastName = record[2]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
