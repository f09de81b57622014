package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"practicelog/internal/calendar"
	"practicelog/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "PRACTICELOG_HTTP_TIMEOUT"
	apiTokenEnvKey     = "PRACTICELOG_API_TOKEN"
)

// Client is a simple HTTP client for the practicelog API.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a new API client. A bearer token from PRACTICELOG_API_TOKEN is used until Login replaces it.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken: strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
	}
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.authToken = strings.TrimSpace(token)
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, LoginRequest{Username: username, Password: password}, &resp)
	if err == nil {
		c.SetToken(resp.Token)
	}
	return resp, err
}

func (c *Client) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var resp []models.Topic
	err := c.do(ctx, http.MethodGet, "/v1/topics", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateTopic(ctx context.Context, title string) (models.Topic, error) {
	var resp models.Topic
	err := c.do(ctx, http.MethodPost, "/v1/topics", nil, TopicCreateRequest{Title: title}, &resp)
	return resp, err
}

func (c *Client) DeleteTopic(ctx context.Context, id string) (WriteResponse, error) {
	var resp WriteResponse
	err := c.do(ctx, http.MethodDelete, "/v1/topics/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListGoals(ctx context.Context, topicID string) ([]models.Goal, error) {
	var resp []models.Goal
	err := c.do(ctx, http.MethodGet, "/v1/topics/"+url.PathEscape(topicID)+"/goals", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateGoal(ctx context.Context, topicID string, req GoalCreateRequest) (models.Goal, error) {
	var resp models.Goal
	err := c.do(ctx, http.MethodPost, "/v1/topics/"+url.PathEscape(topicID)+"/goals", nil, req, &resp)
	return resp, err
}

func (c *Client) UpdateGoal(ctx context.Context, id string, req GoalPatchRequest) (GoalResponse, error) {
	var resp GoalResponse
	err := c.do(ctx, http.MethodPatch, "/v1/goals/"+url.PathEscape(id), nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteGoal(ctx context.Context, id string) (WriteResponse, error) {
	var resp WriteResponse
	err := c.do(ctx, http.MethodDelete, "/v1/goals/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListLogs(ctx context.Context, goalID string) ([]models.Log, error) {
	var resp []models.Log
	err := c.do(ctx, http.MethodGet, "/v1/goals/"+url.PathEscape(goalID)+"/logs", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateLog(ctx context.Context, goalID string, req LogCreateRequest) (LogResponse, error) {
	var resp LogResponse
	err := c.do(ctx, http.MethodPost, "/v1/goals/"+url.PathEscape(goalID)+"/logs", nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteLog(ctx context.Context, id string) (WriteResponse, error) {
	var resp WriteResponse
	err := c.do(ctx, http.MethodDelete, "/v1/logs/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListRepertoire(ctx context.Context) ([]models.Repertoire, error) {
	var resp []models.Repertoire
	err := c.do(ctx, http.MethodGet, "/v1/repertoire", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateRepertoire(ctx context.Context, req RepertoireRequest) (models.Repertoire, error) {
	var resp models.Repertoire
	err := c.do(ctx, http.MethodPost, "/v1/repertoire", nil, req, &resp)
	return resp, err
}

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var resp []models.Tag
	err := c.do(ctx, http.MethodGet, "/v1/tags", nil, nil, &resp)
	return resp, err
}

func (c *Client) GetSession(ctx context.Context, date string) (SessionResponse, error) {
	var resp SessionResponse
	err := c.do(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(date), nil, nil, &resp)
	return resp, err
}

func (c *Client) AddSessionGoal(ctx context.Context, date, goalID string) error {
	return c.do(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(date)+"/goals", nil, SessionGoalRequest{GoalID: goalID}, nil)
}

func (c *Client) Activity(ctx context.Context, year int) (calendar.Heatmap, error) {
	var resp calendar.Heatmap
	err := c.do(ctx, http.MethodGet, "/v1/activity/"+strconv.Itoa(year), nil, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Code
		apiErr.ErrorCode = errResp.ErrorCode
		apiErr.Message = errResp.Error
		return apiErr
	}
	return apiErr
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.authToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
