// Package remote implements the gateway collaborator: login and command
// forwarding over HTTP. Remote failure codes translate into the local error
// taxonomy; retry policy, if any, lives here and not in the core.
package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modular-tools/cli/internal/apperr"
	"github.com/modular-tools/cli/internal/domain"
)

const requestTimeout = 30 * time.Second

// Client talks to one gateway instance.
type Client struct {
	base  string
	token string
	httpc *http.Client
}

// NewClient creates a Client for the given base address. The token may be
// empty before the first login.
func NewClient(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		httpc: &http.Client{Timeout: requestTimeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Jwt      string          `json:"jwt"`
	Version  string          `json:"version"`
	Meta     json.RawMessage `json:"meta"`
	Warnings []string        `json:"warnings"`
}

type execRequest struct {
	Parameters []string `json:"parameters"`
}

type execResponse struct {
	Message  string   `json:"message"`
	Warnings []string `json:"warnings"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login authenticates and returns the session token, the gateway version,
// and the caller's command catalog.
func (c *Client) Login(username, password string) (domain.LoginResult, error) {
	body, err := c.post("/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return domain.LoginResult{}, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.LoginResult{}, apperr.New(apperr.BadGateway,
			"gateway returned an unreadable login response: %v", err)
	}

	return domain.LoginResult{
		Token:    resp.Jwt,
		Version:  resp.Version,
		Catalog:  resp.Meta,
		Warnings: resp.Warnings,
	}, nil
}

// Execute forwards a fully-specified command to the gateway.
func (c *Client) Execute(routePath string, args []string) (domain.ExecResult, error) {
	body, err := c.post(routePath, execRequest{Parameters: args})
	if err != nil {
		return domain.ExecResult{}, err
	}

	var resp execResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// not every command returns structured output
		return domain.ExecResult{Message: strings.TrimSpace(string(body))}, nil
	}
	return domain.ExecResult{Message: resp.Message, Warnings: resp.Warnings}, nil
}

func (c *Client) post(path string, payload any) ([]byte, error) {
	if c.base == "" {
		return nil, apperr.New(apperr.ServiceUnavailable,
			"the gateway address is not configured, run setup first")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.New(apperr.Internal, "encode request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return nil, apperr.New(apperr.Internal, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, apperr.New(apperr.GatewayTimeout, "gateway timed out: %v", err)
		}
		return nil, apperr.New(apperr.ServiceUnavailable, "gateway unreachable: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.New(apperr.BadGateway, "read gateway response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.FromResponse(resp.StatusCode, errorMessage(resp, body))
	}
	return body, nil
}

// errorMessage extracts the failure message from a non-200 response, falling
// back to the HTTP status text.
func errorMessage(resp *http.Response, body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Message != "" {
		return er.Message
	}
	return fmt.Sprintf("gateway responded with %s", http.StatusText(resp.StatusCode))
}

// Verify Client implements domain.Gateway.
var _ domain.Gateway = (*Client)(nil)
