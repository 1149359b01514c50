package proxmox

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/imamik/pvestack/internal/config"
)

// HostShell runs a command on the Proxmox host itself, returning combined
// output and exit code. Implemented by internal/platform/ssh.Client.
type HostShell interface {
	RunCommand(ctx context.Context, command string) (output string, exitCode int, err error)
}

// RealClient implements HostManager against a live Proxmox VE node.
type RealClient struct {
	baseURL     string
	tokenID     string
	tokenSecret string
	node        string
	storage     string
	http        *http.Client
	shell       HostShell
	timeouts    *config.Timeouts
}

// RealClientOpts configures a RealClient.
type RealClientOpts struct {
	// APIURL is the API endpoint root, e.g. https://pve1.example:8006.
	APIURL string
	// TokenID is the API token identifier, e.g. root@pam!pvestack.
	TokenID     string
	TokenSecret string
	Node        string
	Storage     string
	// InsecureSkipVerify disables TLS certificate verification, needed for
	// nodes running the default self-signed certificate.
	InsecureSkipVerify bool
	// Shell is the host shell used for the exec path.
	Shell HostShell
}

// NewRealClient creates a client for a Proxmox VE node. HTTP calls go
// through a retrying client so transient API failures are absorbed before
// they reach the provisioning logic.
func NewRealClient(opts RealClientOpts) *RealClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	if opts.InsecureSkipVerify {
		rc.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- self-signed node certs are opt-in
		}
	}

	return &RealClient{
		baseURL:     strings.TrimSuffix(opts.APIURL, "/") + "/api2/json",
		tokenID:     opts.TokenID,
		tokenSecret: opts.TokenSecret,
		node:        opts.Node,
		storage:     opts.Storage,
		http:        rc.StandardClient(),
		shell:       opts.Shell,
		timeouts:    config.LoadTimeouts(),
	}
}

// apiResponse is the envelope every Proxmox API response uses.
type apiResponse struct {
	Data json.RawMessage `json:"data"`
}

// do performs an API request and unmarshals the data envelope into out.
// A nil form sends no body; a nil out discards the response data.
func (c *RealClient) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("PVEAPIToken=%s=%s", c.tokenID, c.tokenSecret))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data from %s: %w", path, err)
	}
	return nil
}

// ExistingConfigIDs returns the identifiers of all guest configuration
// records in the cluster, containers and VMs alike.
func (c *RealClient) ExistingConfigIDs(ctx context.Context) (map[int]struct{}, error) {
	var resources []struct {
		VMID int `json:"vmid"`
	}
	if err := c.do(ctx, http.MethodGet, "/cluster/resources?type=vm", nil, &resources); err != nil {
		return nil, fmt.Errorf("failed to list guest resources: %w", err)
	}

	ids := make(map[int]struct{}, len(resources))
	for _, r := range resources {
		ids[r.VMID] = struct{}{}
	}
	return ids, nil
}

// ExistingVolumeNames returns the volume identifiers present on the
// configured storage.
func (c *RealClient) ExistingVolumeNames(ctx context.Context) ([]string, error) {
	var content []struct {
		VolID string `json:"volid"`
	}
	path := fmt.Sprintf("/nodes/%s/storage/%s/content", c.node, c.storage)
	if err := c.do(ctx, http.MethodGet, path, nil, &content); err != nil {
		return nil, fmt.Errorf("failed to list storage content: %w", err)
	}

	names := make([]string, 0, len(content))
	for _, v := range content {
		names = append(names, v.VolID)
	}
	return names, nil
}

// NextID returns the cluster's suggested next free guest identifier.
func (c *RealClient) NextID(ctx context.Context) (int, error) {
	var next string
	if err := c.do(ctx, http.MethodGet, "/cluster/nextid", nil, &next); err != nil {
		return 0, fmt.Errorf("failed to query next id: %w", err)
	}
	id, err := strconv.Atoi(next)
	if err != nil {
		return 0, fmt.Errorf("unexpected next id %q: %w", next, err)
	}
	return id, nil
}
