// Package client implements the remote catalog client: a thin GraphQL
// transport plus the typed capability set the scrape packages consume.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrUnauthorized is returned when the server rejects the session cookie.
// Credentials cannot self-heal mid-run, so callers treat this as fatal.
var ErrUnauthorized = errors.New("catalog server returned HTTP 401, session cookie authentication most likely failed")

// SessionCookie carries the session credential from the plugin host.
type SessionCookie struct {
	Value string `json:"Value"`
}

// Connection holds the server connection parameters handed over by the
// plugin host on stdin. Field names match the host's JSON envelope.
type Connection struct {
	Scheme        string        `json:"Scheme"`
	Port          int           `json:"Port"`
	Domain        string        `json:"Domain"`
	SessionCookie SessionCookie `json:"SessionCookie"`
}

// GraphQLEndpoint builds the catalog server's GraphQL URL. An empty domain
// means the server runs on the same host as the plugin.
func (c Connection) GraphQLEndpoint() string {
	domain := c.Domain
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("%s://%s:%d/graphql", c.Scheme, domain, c.Port)
}

// GraphQLClient is the transport underneath CatalogClient. It POSTs queries
// as JSON and authenticates with the host-provided session cookie.
type GraphQLClient struct {
	endpoint string
	session  string
	http     *http.Client
}

// NewGraphQLClient creates a transport for the given connection parameters.
func NewGraphQLClient(conn Connection) *GraphQLClient {
	endpoint := conn.GraphQLEndpoint()
	log.Debug().Str("endpoint", endpoint).Msg("Using catalog GraphQL endpoint")

	return &GraphQLClient{
		endpoint: endpoint,
		session:  conn.SessionCookie.Value,
		http: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Execute runs a query or mutation and unmarshals the response data into out.
// Queries must already have their fragments resolved (see fragments.go).
func (c *GraphQLClient) Execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graphql query failed: %d - %s", resp.StatusCode, string(raw))
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", gqlResp.Errors[0].Message)
	}

	if out != nil && len(gqlResp.Data) > 0 {
		if err := json.Unmarshal(gqlResp.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal graphql data: %w", err)
		}
	}
	return nil
}
