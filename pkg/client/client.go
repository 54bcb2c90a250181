package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a typed HTTP client for the Angler Atlas API. All calls use the
// session passed at construction; there is no package-level token.
type Client struct {
	session *Session
	http    *http.Client
}

// New creates a Client bound to a session.
func New(session *Session) *Client {
	return &Client{
		session: session,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the {"error": message} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.session.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// AuthResponse is the body of register and login responses.
type AuthResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Register creates an account and stores the token on the session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", payload, &out); err != nil {
		return nil, err
	}
	c.session.Token = out.Token
	return &out, nil
}

// Login authenticates and stores the token on the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &out); err != nil {
		return nil, err
	}
	c.session.Token = out.Token
	return &out, nil
}

// LogCatch submits a new catch. Fields mirror the server's request body.
func (c *Client) LogCatch(ctx context.Context, catch map[string]interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/catches/log", catch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FeedPage is one page of the public feed.
type FeedPage struct {
	Catches    json.RawMessage `json:"catches"`
	Pagination struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
}

// Feed fetches a page of the public catch feed.
func (c *Client) Feed(ctx context.Context, page int) (*FeedPage, error) {
	var out FeedPage
	path := "/api/catches/feed?page=" + strconv.Itoa(page)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Nearby fetches public catches around a point. maxDistance of 0 uses the
// server default of 5000 meters.
func (c *Client) Nearby(ctx context.Context, longitude, latitude float64, maxDistance int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	if maxDistance > 0 {
		q.Set("maxDistance", strconv.Itoa(maxDistance))
	}
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/catches/nearby?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserCatches fetches a user's visible catches.
func (c *Client) UserCatches(ctx context.Context, userID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/catches/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LikeResult is the body of a like toggle response.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike toggles the session user's like on a catch.
func (c *Client) ToggleLike(ctx context.Context, catchID string) (*LikeResult, error) {
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, "/api/catches/"+url.PathEscape(catchID)+"/like", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Comment appends a comment to a catch and returns the updated sequence.
func (c *Client) Comment(ctx context.Context, catchID, text string) (json.RawMessage, error) {
	var out json.RawMessage
	payload := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/api/catches/"+url.PathEscape(catchID)+"/comment", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaderboardRow is one entry of the ranked leaderboard.
type LeaderboardRow struct {
	Position         int     `json:"position"`
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Rank             string  `json:"rank"`
	Points           int     `json:"points"`
	ProfilePicture   string  `json:"profilePicture,omitempty"`
	CalculatedPoints float64 `json:"calculatedPoints"`
}

// Leaderboard fetches the board for a timeframe ("all", "week" or "month").
func (c *Client) Leaderboard(ctx context.Context, timeframe string) ([]LeaderboardRow, error) {
	var out []LeaderboardRow
	path := "/api/leaderboard?timeframe=" + url.QueryEscape(timeframe)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserRankResult is the body of a user rank lookup.
type UserRankResult struct {
	User json.RawMessage `json:"user"`
	Rank int64           `json:"rank"`
}

// UserRank fetches a user's profile and dense rank.
func (c *Client) UserRank(ctx context.Context, userID string) (*UserRankResult, error) {
	var out UserRankResult
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FollowResult is the body of a follow toggle response.
type FollowResult struct {
	Message   string `json:"message"`
	Following bool   `json:"following"`
}

// ToggleFollow toggles the follow edge toward the target user.
func (c *Client) ToggleFollow(ctx context.Context, userID string) (*FollowResult, error) {
	var out FollowResult
	if err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/follow", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile update; only the keys present in
// fields are sent.
func (c *Client) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID), fields, &out); err != nil {
		return nil, err
	}
	return out, nil
}
