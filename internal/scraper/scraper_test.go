package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := New("user", "pass")
	c.baseURL = server.URL
	return c
}

func TestLogin(t *testing.T) {
	t.Run("successful flow", func(t *testing.T) {
		var loginSeen bool
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/":
				w.Write([]byte("<html>welcome</html>"))
			case "/login.do":
				r.ParseForm()
				if r.PostForm.Get("username") != "user" || r.PostForm.Get("command") != "login" {
					t.Errorf("unexpected login payload: %v", r.PostForm)
				}
				loginSeen = true
				w.Write([]byte("<html>خروج</html>"))
			case "/action.do", "/register.do":
				w.Write([]byte("<html>ok</html>"))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))

		if err := c.Login(context.Background()); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !loginSeen {
			t.Error("login POST never reached the server")
		}
	})

	t.Run("missing logout link fails", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not logged in</html>"))
		}))

		if err := c.Login(context.Background()); err == nil {
			t.Error("expected login failure")
		}
	})

	t.Run("warm-up login redirect", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/login.do":
				w.Write([]byte("<html>خروج</html>"))
			case "/action.do":
				w.Write([]byte(loginMarker))
			default:
				w.Write([]byte("<html>ok</html>"))
			}
		}))

		err := c.Login(context.Background())
		if !errors.Is(err, ErrLoginRedirect) {
			t.Errorf("expected ErrLoginRedirect, got %v", err)
		}
	})
}

func TestFetchDepartment(t *testing.T) {
	t.Run("extracts into snapshot", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			if r.PostForm.Get("depID") != "40" {
				t.Errorf("expected depID 40, got %s", r.PostForm.Get("depID"))
			}
			w.Write([]byte(testPage))
		}))

		snap := course.NewSnapshot()
		count, err := c.FetchDepartment(context.Background(), 40, "مهندسی_کامپیوتر", snap)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if count != 3 || len(snap) != 3 {
			t.Errorf("expected 3 courses, got count=%d len=%d", count, len(snap))
		}
	})

	t.Run("login page is fatal", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(loginMarker))
		}))

		_, err := c.FetchDepartment(context.Background(), 40, "مهندسی_کامپیوتر", course.NewSnapshot())
		if !errors.Is(err, ErrLoginRedirect) {
			t.Errorf("expected ErrLoginRedirect, got %v", err)
		}
	})

	t.Run("server error is typed", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := c.FetchDepartment(context.Background(), 40, "مهندسی_کامپیوتر", course.NewSnapshot())
		if !IsServerError(err) {
			t.Errorf("expected a server error, got %v", err)
		}
		var statusErr *StatusCodeError
		if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadGateway {
			t.Errorf("expected status 502, got %v", err)
		}
	})
}
