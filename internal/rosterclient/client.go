// Package rosterclient calls the roster API over HTTP.
package rosterclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"team-roster-service/internal/domain"
)

var ErrUnexpectedResponse = errors.New("unexpected roster response")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// TeamRoster fetches GET /team/{teamName}. A 404, or a success body without a team,
// yields domain.ErrNotFound. Transport failures and other statuses wrap ErrUnexpectedResponse
// or the underlying network error.
func (c *Client) TeamRoster(ctx context.Context, teamName string) (domain.TeamRoster, error) {
	if teamName == "" {
		return domain.TeamRoster{}, domain.ErrMalformedRequest
	}

	endpoint := c.baseURL + "/team/" + url.PathEscape(teamName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.TeamRoster{}, fmt.Errorf("build roster request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TeamRoster{}, fmt.Errorf("fetch roster: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.TeamRoster{}, domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.TeamRoster{}, fmt.Errorf("%w: %s", domain.ErrMalformedRequest, readError(resp.Body))
	default:
		return domain.TeamRoster{}, fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, resp.StatusCode, readError(resp.Body))
	}

	var payload teamRosterPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.TeamRoster{}, fmt.Errorf("%w: decode body: %w", ErrUnexpectedResponse, err)
	}
	if payload.Team == nil {
		return domain.TeamRoster{}, domain.ErrNotFound
	}

	return payload.toDomain(), nil
}

func readError(body io.Reader) string {
	var payload errorPayload
	if err := json.NewDecoder(io.LimitReader(body, 4<<10)).Decode(&payload); err != nil || payload.Error == "" {
		return "no error message"
	}
	return payload.Error
}
