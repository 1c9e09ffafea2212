package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultBaseURL is the public jbovlaste server
	DefaultBaseURL = "https://jbovlaste.lojban.org"

	loginPath  = "/login.html"
	exportPath = "/export/xml-export.html"
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unsuccessful status code %d (%s)",
		e.Op, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client fetches exports from one jbovlaste server.
type Client struct {
	baseURL string
	lang    string
	http    *http.Client
}

// New returns a Client for the server at baseURL exporting the
// natural language lang. timeout bounds each request; zero means none.
func New(baseURL, lang string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "cookie jar")
	}
	return NewWithHTTPClient(baseURL, lang, &http.Client{Jar: jar, Timeout: timeout})
}

// NewWithHTTPClient is New using hc for requests. hc must have a
// cookie jar for the login session to persist.
func NewWithHTTPClient(baseURL, lang string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q is not absolute", baseURL)
	}
	if hc.Jar == nil {
		return nil, errors.New("http client has no cookie jar")
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), lang: lang, http: hc}, nil
}

// Login authenticates the client's session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{
		"backto":   {""},
		"username": {username},
		"password": {password},
	}
	target := c.baseURL + loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "login")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	glog.V(1).Infof("login %s as %q", target, username)
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "login")
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return errors.Wrap(err, "login: read response")
	}
	if err := checkStatus("login", target, resp); err != nil {
		return err
	}
	glog.V(1).Infof("login ok: %s", resp.Status)
	return nil
}

// Fetch downloads the export document. The client should be logged in.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	target := c.baseURL + exportPath + "?" + url.Values{"lang": {c.lang}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "export")
	}

	glog.V(1).Infof("export %s", target)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "export")
	}
	defer resp.Body.Close()
	if err := checkStatus("export", target, resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "export: read response")
	}
	glog.V(2).Infof("export read %d bytes in %s", len(data), time.Since(start))
	return data, nil
}

// Export logs in and fetches the export document.
func (c *Client) Export(ctx context.Context, username, password string) ([]byte, error) {
	if err := c.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return c.Fetch(ctx)
}

func checkStatus(op, target string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errors.WithStack(&StatusError{Op: op, URL: target, StatusCode: resp.StatusCode})
}
