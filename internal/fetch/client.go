// Package fetch retrieves schema-introspection documents over HTTP.
//
// This is the I/O collaborator at the boundary of the model core: one
// network round trip per schema snapshot, with timeouts imposed here and
// nowhere deeper. The core packages never see a connection.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single introspection round trip.
const DefaultTimeout = 30 * time.Second

// queryDepth is how many ofType levels the generated introspection query
// requests. The resolver itself has no depth cap; this limit only bounds
// what the server is asked to return, so schemas wrapped deeper than this
// arrive truncated and fail the build with a malformed-reference error.
const queryDepth = 9

// Client fetches introspection documents from a single endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithHTTP creates a client using a caller-supplied HTTP client.
func NewClientWithHTTP(endpoint string, httpClient *http.Client) *Client {
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Endpoint returns the endpoint URL this client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SetTimeout overrides the request timeout. A zero or negative duration
// keeps the current timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// Fetch performs the introspection query and returns the raw response
// body. The body is not interpreted beyond surfacing transport failures
// and GraphQL-level errors; parsing belongs to pkg/introspection.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"query": IntrospectionQuery()})
	if err != nil {
		return nil, fmt.Errorf("encode introspection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build introspection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch introspection from %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read introspection response from %s: %w", c.endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("introspection request to %s failed with status %d", c.endpoint, resp.StatusCode)
	}

	if msg := graphqlError(body); msg != "" {
		return nil, fmt.Errorf("introspection query rejected by %s: %s", c.endpoint, msg)
	}

	return body, nil
}

// graphqlError extracts the first GraphQL-level error message, if any.
func graphqlError(body []byte) string {
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Errors) == 0 {
		return ""
	}
	return envelope.Errors[0].Message
}

// IntrospectionQuery returns the introspection query text. The TypeRef
// fragment is generated to queryDepth levels of ofType nesting.
func IntrospectionQuery() string {
	var b strings.Builder
	b.WriteString(`query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
  }
}
fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}
fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}
fragment TypeRef on __Type {
`)
	b.WriteString(typeRefLevels(queryDepth))
	b.WriteString("}\n")
	return b.String()
}

// typeRefLevels emits "kind name" with depth nested ofType blocks.
func typeRefLevels(depth int) string {
	var b strings.Builder
	indent := "  "
	for i := 0; i < depth; i++ {
		b.WriteString(indent + "kind\n")
		b.WriteString(indent + "name\n")
		if i < depth-1 {
			b.WriteString(indent + "ofType {\n")
			indent += "  "
		}
	}
	for i := depth - 1; i > 0; i-- {
		indent = strings.Repeat("  ", i)
		b.WriteString(indent + "}\n")
	}
	return b.String()
}
