package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mondaydiag/internal/models"
)

// ErrMalformedResponse marks an upstream reply that decoded fine as JSON
// but does not have the shape the query asked for.
var ErrMalformedResponse = errors.New("malformed monday API response")

const boardQuery = `query ($boardID: [ID!]) {
  boards(ids: $boardID) {
    name
    columns { id title type settings_str }
    items(limit: 3) { id name column_values { id title text } }
  }
}`

type MondayClient struct {
	Client   *http.Client
	APIURL   string
	APIToken string
}

func NewMondayClient(apiURL, token string) *MondayClient {
	return &MondayClient{
		Client:   &http.Client{Timeout: 30 * time.Second},
		APIURL:   apiURL,
		APIToken: token,
	}
}

type graphqlError struct {
	Message string `json:"message"`
}

// Execute posts one GraphQL query and returns the raw data payload.
// GraphQL-level errors are joined into a single returned error.
func (mc *MondayClient) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mc.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", mc.APIToken)

	resp, err := mc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send post request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("monday API returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode monday response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("monday API returned errors: %s", strings.Join(msgs, "; "))
	}

	return envelope.Data, nil
}

// FetchBoard retrieves the board's name, columns, and a 3-item sample.
// The board ID goes through a query variable, never string interpolation.
func (mc *MondayClient) FetchBoard(ctx context.Context, boardID string) (*models.Board, error) {
	data, err := mc.Execute(ctx, boardQuery, map[string]any{"boardID": []string{boardID}})
	if err != nil {
		return nil, err
	}

	var result struct {
		Boards []models.Board `json:"boards"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Boards) == 0 {
		return nil, fmt.Errorf("%w: no board returned for ID %s", ErrMalformedResponse, boardID)
	}

	return &result.Boards[0], nil
}
