package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fileshare/internal/client/apierror"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// maxResponseBody caps how much of a reply is read.
const maxResponseBody = 4 << 20

// HTTPClient is the request interceptor in front of the backend.
type HTTPClient struct {
	baseURL    string
	http       *http.Client
	classifier apierror.Classifier
	recorder   Recorder
	logger     logging.Logger
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets a per-request timeout on the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithClassifier replaces the default detail heuristic.
func WithClassifier(cl apierror.Classifier) Option {
	return func(c *HTTPClient) { c.classifier = cl }
}

// WithRecorder installs a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *HTTPClient) { c.recorder = r }
}

// WithLogger sets the logger used for request traces.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for the backend rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{},
		classifier: apierror.DetailHeuristic{},
		recorder:   nopRecorder{},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request is one outgoing call before it is sent.
type request struct {
	method      string
	endpoint    string
	label       string // metrics label, defaults to endpoint
	body        io.Reader
	contentType string
	token       string
	fallback    string
}

// Do sends a JSON request and decodes a JSON reply into out (which may be
// nil). A non-empty token is sent as a bearer credential.
func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, body any, token string, out any) error {
	return c.doJSON(ctx, request{method: method, endpoint: endpoint, token: token, fallback: apierror.FallbackAPI}, body, out)
}

func (c *HTTPClient) doJSON(ctx context.Context, r request, body any, out any) error {
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apierror.Transport("failed to encode request", err)
		}
		r.body = bytes.NewReader(b)
		r.contentType = "application/json"
	}

	return c.send(ctx, r, out)
}

func (c *HTTPClient) send(ctx context.Context, r request, out any) error {
	start := time.Now()
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.endpoint, r.body)
	if err != nil {
		return apierror.Transport("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.finish(ctx, r, requestID, 0, OutcomeTransport, start)
		return apierror.Transport(transportMessage(err), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.finish(ctx, r, requestID, resp.StatusCode, OutcomeTransport, start)
		return apierror.Transport("failed to read response", err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if !isJSON || !ok {
		e := c.classifier.Classify(resp.StatusCode, raw, isJSON, r.fallback)
		outcome := OutcomeDomain
		if e.SessionExpired {
			outcome = OutcomeExpired
		}
		c.finish(ctx, r, requestID, resp.StatusCode, outcome, start)
		return e
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.finish(ctx, r, requestID, resp.StatusCode, OutcomeTransport, start)
			return apierror.Transport("invalid response body", err)
		}
	}

	c.finish(ctx, r, requestID, resp.StatusCode, OutcomeOK, start)
	return nil
}

func (c *HTTPClient) finish(ctx context.Context, r request, requestID string, status int, outcome Outcome, start time.Time) {
	elapsed := time.Since(start)
	label := r.label
	if label == "" {
		label = r.endpoint
	}
	c.recorder.Observe(label, outcome, elapsed)
	c.logger.Debug(ctx, "backend call",
		"method", r.method,
		"endpoint", r.endpoint,
		"status", status,
		"outcome", string(outcome),
		"request_id", requestID,
		"elapsed", elapsed,
	)
}

func transportMessage(err error) string {
	var rf *readFileError
	switch {
	case errors.As(err, &rf):
		return rf.Error()
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return common.ErrUnavailable.Error()
	}
}

// Ping checks that the backend answers and returns its greeting.
func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := c.Do(ctx, http.MethodGet, "/", nil, "", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for an access token. The backend expects an
// OAuth2 password form, not JSON.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp models.LoginResponse
	err := c.send(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		fallback:    apierror.FallbackAPI,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, apierror.Transport("login response has no access token", common.ErrEmptyToken)
	}
	return &resp, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token, newPassword string) error {
	body := struct {
		NewPassword string `json:"new_password"`
	}{newPassword}
	return c.Do(ctx, http.MethodPost, "/change-password", body, token, nil)
}

// UpdateShare changes the password and/or lifetime of an uploaded share.
func (c *HTTPClient) UpdateShare(ctx context.Context, token string, settings models.ShareSettings) error {
	if settings.PublicID == "" {
		return common.ErrNoShare
	}
	return c.doJSON(ctx, request{
		method:   http.MethodPost,
		endpoint: "/share/" + url.PathEscape(settings.PublicID),
		label:    "/share/{public_id}",
		token:    token,
		fallback: apierror.FallbackAPI,
	}, settings, nil)
}

// Upload sends files as one multipart request under the "files" field.
// The body is streamed through a pipe.
func (c *HTTPClient) Upload(ctx context.Context, token string, files []File) (*models.ShareResult, error) {
	if len(files) == 0 {
		return nil, common.ErrNoFiles
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	contentType := mw.FormDataContentType()

	go func() {
		pw.CloseWithError(writeParts(mw, files))
	}()

	var resp models.ShareResult
	err := c.send(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/upload",
		body:        pr,
		contentType: contentType,
		token:       token,
		fallback:    apierror.FallbackUpload,
	}, &resp)
	// unblocks the writer if the request ended before the body was consumed
	_ = pr.Close()
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func writeParts(mw *multipart.Writer, files []File) error {
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return &readFileError{name: f.Name, err: err}
		}
	}
	return mw.Close()
}

// readFileError is a local upload source failing mid-stream.
type readFileError struct {
	name string
	err  error
}

func (e *readFileError) Error() string {
	return fmt.Sprintf("%s %s: %v", common.ErrReadFile, e.name, e.err)
}

func (e *readFileError) Unwrap() []error {
	return []error{common.ErrReadFile, e.err}
}
