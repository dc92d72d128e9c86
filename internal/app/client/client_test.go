package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finki-emc/aas-client/internal/pkg/apperrors"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	token := "token-1"
	c := New(srv.URL, func() string { return token })

	var out map[string]interface{}
	if err := c.GetJSON(context.Background(), "/ping", &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotAuth != "Bearer token-1" {
		t.Errorf("Authorization = %q, want Bearer token-1", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-Id header not set")
	}

	// The token source is consulted fresh on every request
	token = "token-2"
	if err := c.GetJSON(context.Background(), "/ping", &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotAuth != "Bearer token-2" {
		t.Errorf("Authorization = %q after token change, want Bearer token-2", gotAuth)
	}
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	seen := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		seen = true
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" })
	if err := c.GetJSON(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !seen {
		t.Fatal("request never reached the server")
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q without a token, want empty", gotAuth)
	}
}

func TestStatusErrorCarriesContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"email already exists"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" })
	err := c.PostJSON(context.Background(), "/users/add", map[string]string{}, nil)
	if err == nil {
		t.Fatal("want error for 409 response")
	}
	if !errors.Is(err, apperrors.ErrStatus) {
		t.Fatalf("error %v does not wrap ErrStatus", err)
	}

	var reqErr *apperrors.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error %T is not a RequestError", err)
	}
	if reqErr.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", reqErr.StatusCode)
	}
	if reqErr.Endpoint != "/users/add" {
		t.Errorf("Endpoint = %q, want /users/add", reqErr.Endpoint)
	}
	if reqErr.Body == "" {
		t.Error("Body not captured from the error response")
	}
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" })
	var out map[string]interface{}
	err := c.GetJSON(context.Background(), "/broken", &out)
	if !errors.Is(err, apperrors.ErrDecode) {
		t.Fatalf("error %v does not wrap ErrDecode", err)
	}
}

func TestTransportError(t *testing.T) {
	// Closed server: the dial fails before any response
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, func() string { return "" })
	err := c.GetJSON(context.Background(), "/ping", nil)
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("error %v does not wrap ErrTransport", err)
	}
}

func TestGetBlobReturnsRawBody(t *testing.T) {
	blob := "studentIndex,firstName,lastName\n201234,Ana,Petrovska\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(blob))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" })
	data, err := c.GetBlob(context.Background(), "/export")
	if err != nil {
		t.Fatalf("GetBlob: %v", err)
	}
	if string(data) != blob {
		t.Fatalf("blob = %q, want %q", data, blob)
	}
}

func TestGetBlobStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" })
	if _, err := c.GetBlob(context.Background(), "/export"); !errors.Is(err, apperrors.ErrStatus) {
		t.Fatalf("error %v does not wrap ErrStatus", err)
	}
}

func TestPostMultipartUploadsFile(t *testing.T) {
	var gotName, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotContent = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" })
	err := c.PostMultipart(context.Background(), "/import", "file", "users.csv", []byte("a,b,c"), nil)
	if err != nil {
		t.Fatalf("PostMultipart: %v", err)
	}
	if gotName != "users.csv" {
		t.Errorf("filename = %q, want users.csv", gotName)
	}
	if gotContent != "a,b,c" {
		t.Errorf("content = %q, want a,b,c", gotContent)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	c := New("http://localhost:8080/api/", func() string { return "" })
	if got := c.BaseURL(); got != "http://localhost:8080/api" {
		t.Errorf("BaseURL() = %q, want trimmed form", got)
	}
}
