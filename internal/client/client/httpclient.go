package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userbook/internal/client/models"
	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/google/uuid"
)

const operationsPath = "/operations"

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   common.Kind     `json:"error"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the server at baseURL, e.g.
// "http://127.0.0.1:8080". A zero timeout means no per-request limit.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bad server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("bad server url %q: want http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) List(ctx context.Context) ([]models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "list", url.Values{}, nil)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0)
	if err := decodeData(env, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) Get(ctx context.Context, id int64) (*models.User, error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	env, err := c.do(ctx, http.MethodGet, "get", q, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: no user in response", common.ErrUnavailable)
	}
	var u models.User
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	if u.ID != id {
		return nil, fmt.Errorf("%w: asked for user %d, got %d", common.ErrUnavailable, id, u.ID)
	}
	return &u, nil
}

func (c *HTTPClient) Create(ctx context.Context, f models.UserFields) (int64, string, error) {
	env, err := c.do(ctx, http.MethodPost, "create", nil, fieldsForm(f))
	if err != nil {
		return 0, "", err
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := decodeData(env, &created); err != nil {
		return 0, "", err
	}
	return created.ID, env.Message, nil
}

func (c *HTTPClient) Update(ctx context.Context, id int64, f models.UserFields) (string, error) {
	form := fieldsForm(f)
	form.Set("id", strconv.FormatInt(id, 10))
	env, err := c.do(ctx, http.MethodPost, "update", nil, form)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) (string, error) {
	form := url.Values{"id": {strconv.FormatInt(id, 10)}}
	env, err := c.do(ctx, http.MethodPost, "delete", nil, form)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Ping checks the server's health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", common.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func fieldsForm(f models.UserFields) url.Values {
	return url.Values{
		"name":  {f.Name},
		"email": {f.Email},
		"phone": {f.Phone},
	}
}

// do sends one action and decodes the envelope. A failed envelope is
// returned as *APIError regardless of the HTTP status.
func (c *HTTPClient) do(ctx context.Context, method, action string, query, form url.Values) (*envelope, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("action", action)
	target := c.baseURL + operationsPath + "?" + query.Encode()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: bad response (status %d): %v", common.ErrUnavailable, resp.StatusCode, err)
	}

	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Kind: env.Error, Message: env.Message}
	}
	return &env, nil
}

func decodeData(env *envelope, dst any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%w: bad data payload: %v", common.ErrUnavailable, err)
	}
	return nil
}
