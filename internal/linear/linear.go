// Package linear fetches assigned issues from the Linear GraphQL API.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiURL = "https://api.linear.app/graphql"

const assignedIssuesQuery = `query AssignedIssues($userId: String!) {
  user(id: $userId) {
    assignedIssues(filter: { state: { type: { nin: ["completed", "canceled"] } } }) {
      nodes {
        identifier
        title
        url
      }
    }
  }
}`

// Issue is one assigned Linear issue.
type Issue struct {
	ID    string // identifier like ENG-123
	Title string
	URL   string
}

// Client talks to the Linear API for one configured user.
type Client struct {
	apiKey string
	userID string
	url    string
	http   *http.Client
}

// NewClient returns a Client, or an error naming the missing credential.
// The API key and user ID come from the linear config section or the
// LINEAR_API_KEY and LINEAR_USER_ID environment variables.
func NewClient(apiKey, userID string, httpClient *http.Client) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("linear API key not configured: set LINEAR_API_KEY or linear.api_key in the config file")
	}
	if userID == "" {
		return nil, fmt.Errorf("linear user ID not configured: set LINEAR_USER_ID or linear.user_id in the config file")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{apiKey: apiKey, userID: userID, url: apiURL, http: httpClient}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type issueNode struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

type assignedIssuesResponse struct {
	Data struct {
		User struct {
			AssignedIssues struct {
				Nodes []issueNode `json:"nodes"`
			} `json:"assignedIssues"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// AssignedIssues returns the user's open assigned issues.
func (c *Client) AssignedIssues(ctx context.Context) ([]Issue, error) {
	body, err := json.Marshal(graphqlRequest{
		Query:     assignedIssuesQuery,
		Variables: map[string]any{"userId": c.userID},
	})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query linear: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read linear response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linear API returned %s", resp.Status)
	}

	var parsed assignedIssuesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse linear response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("linear API error: %s", parsed.Errors[0].Message)
	}

	nodes := parsed.Data.User.AssignedIssues.Nodes
	issues := make([]Issue, 0, len(nodes))
	for _, n := range nodes {
		issues = append(issues, Issue{ID: n.Identifier, Title: n.Title, URL: n.URL})
	}
	return issues, nil
}
