// Package salesforce is the record source adapter: SOAP login, then paginated
// REST SOQL queries. Calls are blocking and retry-free; an extraction failure
// is fatal for the run.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrUnauthorized marks login or session failures.
	ErrUnauthorized = errors.New("salesforce: authentication failed")
	// ErrNotFound marks a lookup for a record that does not exist.
	ErrNotFound = errors.New("salesforce: record not found")
)

// Credentials is the username/password/security-token login material.
// Domain selects the endpoint: "login" for production, "test" for sandboxes.
type Credentials struct {
	Username      string
	Password      string
	SecurityToken string
	Domain        string
}

// Client holds an authenticated Salesforce session.
type Client struct {
	instanceURL string
	sessionID   string
	apiVersion  string
	client      *http.Client
	logger      zerolog.Logger
}

const loginEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:partner.soap.sforce.com">
  <soapenv:Body>
    <urn:login>
      <urn:username>%s</urn:username>
      <urn:password>%s</urn:password>
    </urn:login>
  </soapenv:Body>
</soapenv:Envelope>`

// Login authenticates against the SOAP partner endpoint and returns a client
// bound to the session's instance URL. The security token is appended to the
// password, per the username/password flow.
func Login(ctx context.Context, creds Credentials, apiVersion string, logger zerolog.Logger) (*Client, error) {
	domain := creds.Domain
	if domain == "" {
		domain = "login"
	}
	loginURL := fmt.Sprintf("https://%s.salesforce.com/services/Soap/u/%s", domain, apiVersion)

	body := fmt.Sprintf(loginEnvelope,
		xmlEscape(creds.Username),
		xmlEscape(creds.Password+creds.SecurityToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", "login")

	httpClient := &http.Client{Timeout: 60 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read login response: %w", err)
	}

	sessionID, serverURL, err := parseLoginResponse(respBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	instance, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}

	c := &Client{
		instanceURL: instance.Scheme + "://" + instance.Host,
		sessionID:   sessionID,
		apiVersion:  apiVersion,
		client:      httpClient,
		logger:      logger,
	}
	logger.Info().Str("instance", c.instanceURL).Msg("connected to Salesforce")
	return c, nil
}

// parseLoginResponse pulls sessionId and serverUrl out of the SOAP login
// envelope, or the faultstring when login failed.
func parseLoginResponse(data []byte) (sessionID, serverURL string, err error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var fault string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", fmt.Errorf("parse login response: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var target *string
		switch start.Name.Local {
		case "sessionId":
			target = &sessionID
		case "serverUrl":
			target = &serverURL
		case "faultstring":
			target = &fault
		default:
			continue
		}
		if err := dec.DecodeElement(target, &start); err != nil {
			return "", "", fmt.Errorf("decode %s: %w", start.Name.Local, err)
		}
	}

	if fault != "" {
		return "", "", errors.New(fault)
	}
	if sessionID == "" || serverURL == "" {
		return "", "", errors.New("login response missing session")
	}
	return sessionID, serverURL, nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a writer error; bytes.Buffer never errors.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// queryResult is the flattened output of a fully-paginated SOQL query.
type queryResult struct {
	TotalSize int
	Records   []json.RawMessage
}

type queryPage struct {
	TotalSize      int               `json:"totalSize"`
	Done           bool              `json:"done"`
	NextRecordsURL string            `json:"nextRecordsUrl"`
	Records        []json.RawMessage `json:"records"`
}

// queryAll runs a SOQL query and follows nextRecordsUrl until every page is
// consumed, mirroring the REST query-all semantics.
func (c *Client) queryAll(ctx context.Context, soql string) (*queryResult, error) {
	endpoint := fmt.Sprintf("%s/services/data/v%s/query?q=%s",
		c.instanceURL, c.apiVersion, url.QueryEscape(soql))

	result := &queryResult{}
	for {
		page, err := c.queryPage(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		result.TotalSize = page.TotalSize
		result.Records = append(result.Records, page.Records...)
		if page.Done || page.NextRecordsURL == "" {
			return result, nil
		}
		endpoint = c.instanceURL + page.NextRecordsURL
	}
}

func (c *Client) queryPage(ctx context.Context, endpoint string) (*queryPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.sessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read query response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query error %d: %s", resp.StatusCode, string(respBody))
	}

	var page queryPage
	if err := json.Unmarshal(respBody, &page); err != nil {
		return nil, fmt.Errorf("unmarshal query response: %w", err)
	}
	return &page, nil
}
