/*
Package openvsx provides a client for the Open VSX extension registry public API.

Usage:

	cl, err := openvsx.NewClient(nil, nil)
	res, _, err := cl.Query(ctx, &openvsx.QueryOptions{NamespaceName: "confluentinc", ExtensionName: "vscode-confluent"})
*/
package openvsx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"
)

// openVSXHostname - Open VSX API hostname (used as default API).
//
// Open VSX is a vendor-neutral registry of VS Code compatible extensions.
// You can get more info on its API here: open-vsx.org/swagger-ui
var openVSXHostname string = "https://open-vsx.org"

// Client is used to send API requests to the extension registry.
type Client struct {
	baseURL    url.URL
	HttpClient *http.Client
}

// NewClient creates and returns a new client
//
// If a nil URL is provided, default client is configured for open-vsx.org.
func NewClient(httpClient *http.Client, URL *url.URL) (*Client, error) {
	if URL == nil {
		var err error
		if URL, err = url.Parse(openVSXHostname); err != nil {
			return nil, err
		}
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: *URL, HttpClient: httpClient}, nil
}

// Extension represents extension metadata.
type Extension struct {
	Namespace   string            `json:"namespace"`
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	DisplayName string            `json:"displayName"`
	Timestamp   string            `json:"timestamp"`
	PreRelease  bool              `json:"preRelease"`
	AllVersions ExtensionVersions `json:"allVersions"`
}

// ExtensionVersion represents one published version and its metadata URL.
type ExtensionVersion struct {
	Version string
	URL     string
}

// ExtensionVersions represents extension versions list in the registry order.
type ExtensionVersions []ExtensionVersion

// UnmarshalJSON is used in unmarshalling process to keep the original versions order.
//
// We basically use custom decoder to decode and transform key=>url values into slice values.
func (evs *ExtensionVersions) UnmarshalJSON(data []byte) error {
	if len(data) < 1 {
		return fmt.Errorf("invalid slice length %d", len(data))
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	d := json.NewDecoder(bytes.NewReader(data))
	t, err := d.Token()
	if err != nil {
		return fmt.Errorf("ExtensionVersions custom unmarshaller failed: %w", err)
	}
	if t != json.Delim('{') {
		return fmt.Errorf("ExtensionVersions custom unmarshaller failed: expected object, got %v", t)
	}

	var result ExtensionVersions
	for d.More() {
		t, err := d.Token()
		if err != nil {
			return fmt.Errorf("ExtensionVersions custom unmarshaller failed: %w", err)
		}

		var v ExtensionVersion
		v.Version = t.(string)
		if err := d.Decode(&v.URL); err != nil {
			return fmt.Errorf("ExtensionVersions custom unmarshaller failed decoding token: %w", err)
		}

		result = append(result, v)
	}

	*evs = result
	return nil
}

// Extension method is used to get the latest metadata of an extension.
func (c Client) Extension(ctx context.Context, namespace, name string) (*Extension, *http.Response, error) {
	if namespace == "" || name == "" {
		return nil, nil, fmt.Errorf("extension namespace and name are required")
	}

	route := fmt.Sprintf("%s/api/%s/%s", &c.baseURL, url.PathEscape(namespace), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, "GET", route, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create a request: %w", err)
	}

	var ext Extension
	var r *http.Response
	if r, err = parseResponse(&c, req, &ext); err != nil {
		return nil, r, err
	}

	return &ext, r, nil
}

// QueryOptions specifies the parameters to Query() method.
type QueryOptions struct {
	// For filtering extensions by publisher namespace.
	NamespaceName string `url:"namespaceName,omitempty"`
	// For filtering extensions by name.
	ExtensionName string `url:"extensionName,omitempty"`
	// For filtering extensions by exact version.
	ExtensionVersion string `url:"extensionVersion,omitempty"`
}

// QueryResult represents query response object.
type QueryResult struct {
	Extensions []Extension `json:"extensions"`
}

// Query method searches extensions matching the options.
func (c Client) Query(ctx context.Context, opts *QueryOptions) (*QueryResult, *http.Response, error) {
	v, err := query.Values(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing the options: %w", err)
	}

	route := fmt.Sprintf("%s/%s?%s", &c.baseURL, "api/-/query", v.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", route, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create a request: %w", err)
	}

	var qr QueryResult
	var r *http.Response
	if r, err = parseResponse(&c, req, &qr); err != nil {
		return nil, r, err
	}

	return &qr, r, nil
}

// errorResponse represents registry error body.
type errorResponse struct {
	Error string `json:"error"`
}

// parseResponse sends the request and decodes the JSON body into dt.
func parseResponse(c *Client, req *http.Request, dt interface{}) (r *http.Response, err error) {
	if r, err = c.HttpClient.Do(req); err != nil {
		return nil, fmt.Errorf("unable to send a request: %w", err)
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return r, fmt.Errorf("unable to read response body: %w", err)
	}

	// Handling error responses from open vsx api
	var ersp errorResponse
	if perr := json.Unmarshal(body, &ersp); perr == nil && ersp.Error != "" {
		return r, fmt.Errorf("open vsx api responded with error '%s'", ersp.Error)
	}

	if r.StatusCode >= 400 {
		return r, fmt.Errorf("open vsx responded with HTTP error '%d: %s'", r.StatusCode, http.StatusText(r.StatusCode))
	}

	if err = json.Unmarshal(body, dt); err != nil {
		return r, fmt.Errorf("unable to parse response: %w", err)
	}

	return r, nil
}
