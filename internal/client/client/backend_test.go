package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// fakeBackend mimics the file sharing API closely enough for the client.
type fakeBackend struct {
	mu         sync.Mutex
	headers    []http.Header
	uploaded   map[string]string
	settings   map[string]models.ShareSettings
	passwords  map[string]string
	mustChange bool
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	b := &fakeBackend{
		uploaded:   map[string]string{},
		settings:   map[string]models.ShareSettings{},
		passwords:  map[string]string{"alice": "secret"},
		mustChange: true,
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.headers = append(b.headers, req.Header.Clone())
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to File Sharing API."})
	})

	r.Post("/token", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "bad form"})
			return
		}
		user, pass := req.PostForm.Get("username"), req.PostForm.Get("password")
		b.mu.Lock()
		want, ok := b.passwords[user]
		must := b.mustChange
		b.mu.Unlock()
		if !ok || want != pass {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: "tok-" + user, TokenType: "bearer", MustChangePassword: must})
	})

	authed := r.With(requireBearer)

	authed.Post("/change-password", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			NewPassword string `json:"new_password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "bad body"})
			return
		}
		b.mu.Lock()
		b.passwords["alice"] = body.NewPassword
		b.mustChange = false
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
	})

	authed.Post("/upload", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}
		res := models.ShareResult{PublicID: "pub-1", ShareLink: "http://localhost:3000/download/pub-1"}
		for i, fh := range req.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
				return
			}
			data, _ := io.ReadAll(f)
			f.Close()
			b.mu.Lock()
			b.uploaded[fh.Filename] = string(data)
			b.mu.Unlock()
			res.Files = append(res.Files, models.SharedFile{ID: int64(i + 1), Filename: fh.Filename})
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		// naive UTC timestamp, as the backend sends it
		_, _ = io.WriteString(w, strings.Replace(mustJSON(res), `"password_protected"`, `"expires_at":"2025-03-04T10:30:00.123456","password_protected"`, 1))
	})

	authed.Post("/share/{publicID}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "publicID")
		if id != "pub-1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Share not found"})
			return
		}
		var s models.ShareSettings
		if err := json.NewDecoder(req.Body).Decode(&s); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "bad body"})
			return
		}
		if s.ExpiresMinutes != nil && *s.ExpiresMinutes > 1440 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Expiration time cannot exceed 1 day (1440 minutes)"})
			return
		}
		b.mu.Lock()
		b.settings[id] = s
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Share settings updated"})
	})

	r.Get("/gateway", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html><body>502 Bad Gateway</body></html>")
	})

	r.Get("/plain-ok", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "ok")
	})

	r.Get("/broken-json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{not json")
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return b, srv
}

func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Header.Get("Authorization") {
		case "":
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
		case "Bearer expired":
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
		default:
			next.ServeHTTP(w, req)
		}
	})
}

func (b *fakeBackend) lastHeader() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.headers) == 0 {
		return nil
	}
	return b.headers[len(b.headers)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
