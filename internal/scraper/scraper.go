package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
)

const (
	defaultBaseURL = "https://edu.sharif.edu"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	requestTimeout = 30 * time.Second
)

// loginMarker appears in any page served after the session has expired and
// the registration system bounced us to the CAS login.
const loginMarker = "https://accounts.sharif.edu/cas/login?service=https://edu.sharif.edu/login.jsp"

// logoutMarker is present on every page rendered for an authenticated user.
const logoutMarker = "خروج"

// ErrLoginRedirect is returned when a response body is the login page
// instead of the requested content.
var ErrLoginRedirect = errors.New("redirected to login page")

// StatusCodeError reports a non-200 response from the registration system.
type StatusCodeError struct {
	Code int
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

// IsServerError reports whether err is a 5xx StatusCodeError.
func IsServerError(err error) bool {
	var statusErr *StatusCodeError
	return errors.As(err, &statusErr) && statusErr.Code >= 500
}

// Client holds an authenticated session against the registration system.
// It is not safe for concurrent use; callers serialize department fetches.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

// New creates a Client with a fresh cookie jar. Login must be called
// before fetching departments.
func New(username, password string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		baseURL:  defaultBaseURL,
		username: username,
		password: password,
	}
}

// Login performs the login flow and menu warm-up. On return the client's
// session cookies are valid for department fetches.
func (c *Client) Login(ctx context.Context) error {
	// initial GET establishes the session cookie
	if _, err := c.get(ctx, "/"); err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
	}

	body, err := c.postForm(ctx, "/login.do", url.Values{
		"username":         {c.username},
		"password":         {c.password},
		"jcaptcha":         {"ab"},
		"command":          {"login"},
		"captcha_key_name": {"ab"},
		"captchaStatus":    {"ab"},
	})
	if err != nil {
		return fmt.Errorf("posting login: %w", err)
	}
	if !bytes.Contains(body, []byte(logoutMarker)) {
		return errors.New("login failed: response has no logout link")
	}

	return c.warmUp(ctx)
}

// warmUp walks the menu sequence the web UI performs before the course
// list accepts department queries.
func (c *Client) warmUp(ctx context.Context) error {
	body, err := c.postForm(ctx, "/action.do", url.Values{
		"changeMenu":     {"OnlineRegistration"},
		"isShowMenu":     {""},
		"commandMessage": {""},
		"defaultCss":     {""},
	})
	if err != nil {
		return fmt.Errorf("opening registration menu: %w", err)
	}
	if isLoginPage(body) {
		return ErrLoginRedirect
	}

	body, err = c.postForm(ctx, "/register.do", url.Values{
		"changeMenu": {"OnlineRegistration*OfficalLessonListShow"},
		"isShowMenu": {""},
	})
	if err != nil {
		return fmt.Errorf("opening course list: %w", err)
	}
	if isLoginPage(body) {
		return ErrLoginRedirect
	}
	return nil
}

// FetchDepartment requests one department's course table and extracts its
// records into snap. It returns the number of rows extracted.
func (c *Client) FetchDepartment(ctx context.Context, depCode int, depName string, snap course.Snapshot) (int, error) {
	body, err := c.postForm(ctx, "/register.do", url.Values{
		"level":        {"0"},
		"teacher_name": {""},
		"sort_item":    {"1"},
		"depID":        {strconv.Itoa(depCode)},
	})
	if err != nil {
		return 0, fmt.Errorf("fetching department %d: %w", depCode, err)
	}
	if isLoginPage(body) {
		return 0, ErrLoginRedirect
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("parsing department %d page: %w", depCode, err)
	}

	count := ExtractCourses(doc, depCode, depName, snap)
	log.WithFields(log.Fields{"department": depCode, "courses": count}).Debug("extracted department page")
	return count, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req)
}

func (c *Client) postForm(ctx context.Context, path string, data url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusCodeError{Code: resp.StatusCode}
	}
	return body, nil
}

func isLoginPage(body []byte) bool {
	return bytes.Contains(body, []byte(loginMarker))
}
