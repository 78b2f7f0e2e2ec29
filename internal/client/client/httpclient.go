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
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/common"
)

const (
	defaultTimeout = 15 * time.Second

	// createdMessage stands in when an accepted create carries no readable message.
	createdMessage = "Story created"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero disables the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) ListStories(ctx context.Context, token string) ([]models.Story, error) {
	var out struct {
		apiResponse
		ListStory []models.Story `json:"listStory"`
	}
	if err := c.do(ctx, http.MethodGet, "/stories", token, nil, "", &out); err != nil {
		return nil, err
	}
	return out.ListStory, nil
}

func (c *HTTPClient) GetStory(ctx context.Context, id string, token string) (*models.Story, error) {
	var out struct {
		apiResponse
		Story *models.Story `json:"story"`
	}
	if err := c.do(ctx, http.MethodGet, "/stories/"+url.PathEscape(id), token, nil, "", &out); err != nil {
		return nil, err
	}
	if out.Story == nil {
		return nil, &common.RemoteError{StatusCode: http.StatusNotFound, Message: "response carried no story"}
	}
	return out.Story, nil
}

func (c *HTTPClient) CreateStory(ctx context.Context, draft models.Draft, token string) (*models.AddResult, error) {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, fmt.Errorf("encode story form: %w", err)
	}

	var out struct {
		apiResponse
		Story *models.Story `json:"story"`
	}
	err = c.do(ctx, http.MethodPost, "/stories", token, body, contentType, &out)
	switch {
	case errors.Is(err, errMalformedBody):
		// The story exists on the server; an empty or odd body must not make
		// callers submit it again.
		return &models.AddResult{Message: createdMessage}, nil
	case err != nil:
		return nil, err
	}
	return &models.AddResult{Message: out.Message, Story: out.Story}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": string(password)})
	if err != nil {
		return nil, err
	}

	var out struct {
		apiResponse
		LoginResult *models.LoginResult `json:"loginResult"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", "", bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	if out.LoginResult == nil || out.LoginResult.Token == "" {
		return nil, &common.RemoteError{StatusCode: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return out.LoginResult, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	body, err := json.Marshal(map[string]string{"name": name, "email": email, "password": string(password)})
	if err != nil {
		return "", err
	}

	var out apiResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", bytes.NewReader(body), "application/json", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Ping reports whether the API host answers at all. Any HTTP response,
// including an error status, counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformedBody(resp.StatusCode, err)
	}
	return nil
}

// encodeDraft builds the multipart form for POST /stories. Coordinates are
// sent only when present.
func encodeDraft(d models.Draft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := d.PhotoName
	if name == "" {
		name = "photo.jpg"
	}
	ct := d.PhotoType
	if ct == "" {
		ct = http.DetectContentType(d.Photo)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, escapeQuotes(name)))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(d.Photo); err != nil {
		return nil, "", err
	}

	if err := w.WriteField("description", d.Description); err != nil {
		return nil, "", err
	}
	if d.Lat != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*d.Lat, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}
	if d.Lon != nil {
		if err := w.WriteField("lon", strconv.FormatFloat(*d.Lon, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
