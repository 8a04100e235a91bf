package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsvoboda/shelfscan/internal/catalog"
	"github.com/jsvoboda/shelfscan/internal/database/mock"
	"github.com/jsvoboda/shelfscan/internal/ocr"
)

// stubProvider is a canned OCR backend for tests.
type stubProvider struct {
	text string
	err  error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) RecognizeText(ctx context.Context, imageData []byte) (string, error) {
	return s.text, s.err
}

// newTestServer builds a server over in-memory stores.
func newTestServer(t *testing.T, provider ocr.Provider) *Server {
	t.Helper()

	books := mock.NewBookStore()
	users := mock.NewUserStore()
	svc := catalog.NewService(books, nil, 0)

	return NewServer(books, users, svc, provider, 0, "127.0.0.1", "test-secret", nil)
}

// doJSON performs a JSON request against the server router.
func doJSON(t *testing.T, srv *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its session cookies.
func register(t *testing.T, srv *Server, username string) []*http.Cookie {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"password": "correct-horse-battery",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("register set no session cookie")
	}
	return cookies
}

// decodeBody unmarshals a JSON response body.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("could not decode response %q: %v", rec.Body.String(), err)
	}
}

// uploadImage performs a multipart scan upload.
func uploadImage(t *testing.T, srv *Server, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "shelf.jpg")
	if err != nil {
		t.Fatalf("could not create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("could not write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}
