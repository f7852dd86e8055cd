package eas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=client.go -destination=mock_transport_test.go -package=eas

const (
	endpointPath = "/Microsoft-Server-ActiveSync"

	contentTypeWBXML  = "application/vnd.ms-sync.wbxml"
	contentTypeRFC822 = "message/rfc822"

	headerProtocolVersion  = "MS-ASProtocolVersion"
	headerProtocolVersions = "MS-ASProtocolVersions"
	headerPolicyKey        = "X-MS-PolicyKey"

	// maxRedirects is the maximum number of HTTP redirects to follow
	// before giving up, matching the default net/http limit.
	maxRedirects = 10

	// DefaultTimeout applies to every request that does not carry its
	// own timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent is sent when ServerSettings.UserAgent is empty.
	DefaultUserAgent = "eas-sync/1.0"
)

// HTTP status codes with a protocol meaning.
const (
	statusNeedsProvisioning = 449
)

// Transport is the set of typed commands the sync engine, provisioning
// and push loop depend on. *Client implements it.
type Transport interface {
	Provision(ctx context.Context, req *Provision) (*Provision, error)
	FolderSync(ctx context.Context, req *FolderSync) (*FolderSync, error)
	Sync(ctx context.Context, req *Sync) (*Sync, error)
	Ping(ctx context.Context, req *PingRequest, timeout time.Duration) (*PingResponse, error)
	MoveItems(ctx context.Context, req *MoveItems) (*MoveItemsResponse, error)
	SendMail(ctx context.Context, message []byte) error
}

// ServerSettings describes one account on one server.
type ServerSettings struct {
	Host       string
	Port       int
	UseTLS     bool
	Username   string
	Password   string
	DeviceID   string
	DeviceType string
	UserAgent  string
	Timeout    time.Duration
}

// QueryParam is an extra command-specific URL parameter.
type QueryParam struct {
	Name  string
	Value string
}

// Request is one command POST.
type Request struct {
	Command string
	Payload []byte
	Extra   *QueryParam
	// Raw marks the payload as an RFC 822 message instead of WBXML.
	Raw bool
	// Timeout overrides the client default when positive.
	Timeout time.Duration
}

// Client talks to one ActiveSync endpoint.
type Client struct {
	http     *resty.Client
	settings ServerSettings
	session  *Session
	logger   *slog.Logger
	probe    singleflight.Group
}

// sameHostRedirectPolicy follows redirects only when the target host
// matches the original request host so credentials never leave the
// configured server.
func sameHostRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if len(via) > 0 {
		origHost := via[0].URL.Host
		if req.URL.Host != origHost {
			return fmt.Errorf("redirect to different host blocked: %s -> %s", origHost, req.URL.Host)
		}
	}
	return nil
}

// NewClient creates a client for settings. The session carries the
// policy key and negotiated version and may be shared with a
// Provisioner.
func NewClient(settings ServerSettings, session *Session, logger *slog.Logger) *Client {
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if settings.UserAgent == "" {
		settings.UserAgent = DefaultUserAgent
	}

	// No client-wide timeout: Ping is a long poll and every request gets
	// its own deadline through the context.
	rc := resty.New().
		SetBasicAuth(settings.Username, settings.Password).
		SetHeader("User-Agent", settings.UserAgent).
		SetRedirectPolicy(resty.RedirectPolicyFunc(sameHostRedirectPolicy)).
		SetLogger(restyLogger{logger: logger})

	return &Client{
		http:     rc,
		settings: settings,
		session:  session,
		logger:   logger,
	}
}

// Session returns the session the client reads its headers from.
func (c *Client) Session() *Session { return c.session }

func (c *Client) baseURL() string {
	scheme := "http"
	if c.settings.UseTLS {
		scheme = "https"
	}
	host := c.settings.Host
	if c.settings.Port > 0 {
		host = host + ":" + strconv.Itoa(c.settings.Port)
	}
	return scheme + "://" + host + endpointPath
}

// commandURL builds the command URL. Parameter order is fixed; some
// servers are picky about it, so url.Values (which sorts) is not used.
func (c *Client) commandURL(command string, extra *QueryParam) string {
	var b strings.Builder
	b.WriteString(c.baseURL())
	b.WriteString("?Cmd=")
	b.WriteString(url.QueryEscape(command))
	b.WriteString("&User=")
	b.WriteString(url.QueryEscape(c.settings.Username))
	b.WriteString("&DeviceId=")
	b.WriteString(url.QueryEscape(c.settings.DeviceID))
	b.WriteString("&DeviceType=")
	b.WriteString(url.QueryEscape(c.settings.DeviceType))
	if extra != nil {
		b.WriteString("&")
		b.WriteString(url.QueryEscape(extra.Name))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(extra.Value))
	}
	return b.String()
}

// NegotiateProtocolVersion probes the server with OPTIONS once per
// session. Concurrent callers share a single probe.
func (c *Client) NegotiateProtocolVersion(ctx context.Context) (string, error) {
	if v := c.session.ProtocolVersion(); v != "" {
		return v, nil
	}
	v, err, _ := c.probe.Do("options", func() (any, error) {
		if v := c.session.ProtocolVersion(); v != "" {
			return v, nil
		}
		return c.probeVersions(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) probeVersions(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Options(c.commandURL("OPTIONS", nil))
	if err != nil {
		return "", &TransportError{Command: "OPTIONS", Err: err}
	}
	if err := mapHTTPStatus("OPTIONS", resp); err != nil {
		return "", err
	}

	offered := resp.Header().Get(headerProtocolVersions)
	for _, v := range strings.Split(offered, ",") {
		if strings.TrimSpace(v) == ProtocolVersion {
			c.session.setProtocolVersion(ProtocolVersion)
			c.logger.Debug("protocol version negotiated",
				slog.String("version", ProtocolVersion),
				slog.String("offered", offered),
			)
			return ProtocolVersion, nil
		}
	}
	if offered == "" {
		return "", fmt.Errorf("%w: %s header missing", ErrUnsupportedProtocol, headerProtocolVersions)
	}
	return "", fmt.Errorf("%w: server offers %q", ErrUnsupportedProtocol, offered)
}

// Post sends one command and returns the raw response body after the
// HTTP status has been checked.
func (c *Client) Post(ctx context.Context, r Request) ([]byte, error) {
	version, err := c.NegotiateProtocolVersion(ctx)
	if err != nil {
		return nil, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = c.settings.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	contentType := contentTypeWBXML
	if r.Raw {
		contentType = contentTypeRFC822
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader(headerProtocolVersion, version).
		SetHeader(headerPolicyKey, c.session.PolicyKey()).
		SetBody(r.Payload).
		Post(c.commandURL(r.Command, r.Extra))
	if err != nil {
		return nil, &TransportError{Command: r.Command, Err: err}
	}
	if err := mapHTTPStatus(r.Command, resp); err != nil {
		return nil, err
	}

	c.logger.Debug("command completed",
		slog.String("cmd", r.Command),
		slog.Int("status", resp.StatusCode()),
		slog.Int("bytes", len(resp.Body())),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp.Body(), nil
}

// mapHTTPStatus converts non-2xx responses to the error taxonomy.
func mapHTTPStatus(command string, resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%s: %w (HTTP %d)", command, ErrAuthentication, code)
	case code == statusNeedsProvisioning:
		return fmt.Errorf("%s: %w", command, ErrNeedsProvisioning)
	default:
		return &TransportError{
			Command:    command,
			StatusCode: code,
			Body:       sanitizeResponseBody(resp.Body()),
			Err:        errors.New(http.StatusText(code)),
		}
	}
}

// Provision sends a Provision command.
func (c *Client) Provision(ctx context.Context, req *Provision) (*Provision, error) {
	body, err := c.Post(ctx, Request{Command: "Provision", Payload: provisionDocument.Marshal(req)})
	if err != nil {
		return nil, err
	}
	resp, err := provisionDocument.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decoding Provision response: %w", err)
	}
	return resp, nil
}

// FolderSync sends a FolderSync command.
func (c *Client) FolderSync(ctx context.Context, req *FolderSync) (*FolderSync, error) {
	body, err := c.Post(ctx, Request{Command: "FolderSync", Payload: folderSyncDocument.Marshal(req)})
	if err != nil {
		return nil, err
	}
	resp, err := folderSyncDocument.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decoding FolderSync response: %w", err)
	}
	return resp, nil
}

// Sync sends a Sync command.
func (c *Client) Sync(ctx context.Context, req *Sync) (*Sync, error) {
	body, err := c.Post(ctx, Request{Command: "Sync", Payload: syncDocument.Marshal(req)})
	if err != nil {
		return nil, err
	}
	resp, err := syncDocument.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decoding Sync response: %w", err)
	}
	return resp, nil
}

// Ping sends a Ping long poll. timeout must exceed the heartbeat
// interval carried by req.
func (c *Client) Ping(ctx context.Context, req *PingRequest, timeout time.Duration) (*PingResponse, error) {
	body, err := c.Post(ctx, Request{Command: "Ping", Payload: pingRequestDocument.Marshal(req), Timeout: timeout})
	if err != nil {
		return nil, err
	}
	resp, err := pingResponseDocument.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decoding Ping response: %w", err)
	}
	return resp, nil
}

// MoveItems sends a MoveItems command.
func (c *Client) MoveItems(ctx context.Context, req *MoveItems) (*MoveItemsResponse, error) {
	body, err := c.Post(ctx, Request{Command: "MoveItems", Payload: moveItemsDocument.Marshal(req)})
	if err != nil {
		return nil, err
	}
	resp, err := moveItemsResponseDocument.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decoding MoveItems response: %w", err)
	}
	return resp, nil
}

// SendMail submits a raw RFC 822 message and keeps a copy in Sent Items.
func (c *Client) SendMail(ctx context.Context, message []byte) error {
	_, err := c.Post(ctx, Request{
		Command: "SendMail",
		Payload: canonicalLineEndings(message),
		Extra:   &QueryParam{Name: "SaveInSent", Value: "T"},
		Raw:     true,
	})
	return err
}

// canonicalLineEndings turns bare LF into CRLF.
func canonicalLineEndings(b []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b) + len(b)/32)
	for i, c := range b {
		if c == '\n' && (i == 0 || b[i-1] != '\r') {
			out.WriteByte('\r')
		}
		out.WriteByte(c)
	}
	return out.Bytes()
}

// restyLogger routes resty's internal messages to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(strings.TrimSpace(format), v...), slog.String("source", "resty"))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(strings.TrimSpace(format), v...), slog.String("source", "resty"))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(strings.TrimSpace(format), v...), slog.String("source", "resty"))
}
