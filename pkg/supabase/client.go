// Package supabase is a thin PostgREST/GoTrue client. It speaks the REST
// surface directly: query parameters carry PostgREST filter expressions
// ("eq.", "gte.", "is.null") and writes ask for return=representation so
// callers always get the affected rows back.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		URL:        baseURL,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

// request describes one PostgREST call. userToken, when set, replaces the
// service key as the bearer so row-level security applies.
type request struct {
	method    string
	table     string
	query     map[string]interface{}
	body      interface{}
	prefer    string
	userToken string
}

func (c *Client) do(r request) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.URL, r.table)

	var payload io.Reader
	if r.body != nil {
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(r.method, endpoint, payload)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	for key, value := range r.query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("apikey", c.ServiceKey)
	token := c.ServiceKey
	if r.userToken != "" {
		token = r.userToken
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error: %s", string(respBody))
	}

	return respBody, nil
}

// Query executes a query on a Supabase table
func (c *Client) Query(table string, query map[string]interface{}) ([]byte, error) {
	return c.QueryWithToken(table, query, "")
}

// QueryWithToken executes a query with an optional user JWT token for RLS
func (c *Client) QueryWithToken(table string, query map[string]interface{}, userToken string) ([]byte, error) {
	return c.do(request{
		method:    http.MethodGet,
		table:     table,
		query:     query,
		userToken: userToken,
	})
}

// Insert inserts one record or a batch into a Supabase table
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.do(request{
		method: http.MethodPost,
		table:  table,
		body:   data,
		prefer: "return=representation",
	})
}

// InsertIgnoreDuplicates inserts records, silently dropping rows that
// violate the unique index over the onConflict columns. The response holds
// only the rows that were actually inserted.
func (c *Client) InsertIgnoreDuplicates(table string, data interface{}, onConflict string) ([]byte, error) {
	return c.do(request{
		method: http.MethodPost,
		table:  table,
		query:  map[string]interface{}{"on_conflict": onConflict},
		body:   data,
		prefer: "return=representation,resolution=ignore-duplicates",
	})
}

// Upsert inserts or updates records. onConflict names the unique columns
// (e.g. "user_id,activity_template_id"); existing rows are merged.
func (c *Client) Upsert(table string, data interface{}, onConflict string) ([]byte, error) {
	return c.do(request{
		method: http.MethodPost,
		table:  table,
		query:  map[string]interface{}{"on_conflict": onConflict},
		body:   data,
		prefer: "return=representation,resolution=merge-duplicates",
	})
}

// Update updates the record with the given id
func (c *Client) Update(table string, id string, data interface{}) ([]byte, error) {
	return c.UpdateWithToken(table, id, data, "")
}

// UpdateWithToken updates a record with an optional user JWT token for RLS
func (c *Client) UpdateWithToken(table string, id string, data interface{}, userToken string) ([]byte, error) {
	return c.do(request{
		method:    http.MethodPatch,
		table:     table,
		query:     map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)},
		body:      data,
		prefer:    "return=representation",
		userToken: userToken,
	})
}

// UpdateWhere updates all records matching a query
func (c *Client) UpdateWhere(table string, query map[string]interface{}, data interface{}) ([]byte, error) {
	return c.do(request{
		method: http.MethodPatch,
		table:  table,
		query:  query,
		body:   data,
		prefer: "return=representation",
	})
}

// Delete deletes the record with the given id
func (c *Client) Delete(table string, id string) error {
	_, err := c.do(request{
		method: http.MethodDelete,
		table:  table,
		query:  map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)},
	})
	return err
}

// DeleteWhere deletes all records matching a query
func (c *Client) DeleteWhere(table string, query map[string]interface{}) error {
	_, err := c.do(request{
		method: http.MethodDelete,
		table:  table,
		query:  query,
	})
	return err
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken verifies a JWT token against the Supabase auth endpoint and
// returns the user it belongs to.
func (c *Client) VerifyToken(token string) (*User, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}
