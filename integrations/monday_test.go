package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "boards(ids: $boardID)")
		assert.Equal(t, []any{"987654"}, req.Variables["boardID"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"boards":[{
			"name":"Deals",
			"columns":[{"id":"color_1","title":"Stage","type":"color","settings_str":"{\"labels\":{\"0\":\"New\"}}"}],
			"items":[{"id":"1","name":"Acme deal","column_values":[{"id":"color_1","title":"Stage","text":"New"}]}]
		}]}}`))
	}))
	defer srv.Close()

	client := NewMondayClient(srv.URL, "test-token")
	board, err := client.FetchBoard(context.Background(), "987654")
	require.NoError(t, err)

	assert.Equal(t, "Deals", board.Name)
	require.Len(t, board.Columns, 1)
	assert.Equal(t, "color_1", board.Columns[0].ID)
	assert.Equal(t, `{"labels":{"0":"New"}}`, board.Columns[0].SettingsStr)
	require.Len(t, board.Items, 1)
	assert.Equal(t, "Acme deal", board.Items[0].Name)
}

func TestFetchBoardGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"Board not found"}]}`))
	}))
	defer srv.Close()

	client := NewMondayClient(srv.URL, "test-token")
	_, err := client.FetchBoard(context.Background(), "987654")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Board not found")
}

func TestFetchBoardNoBoards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"boards":[]}}`))
	}))
	defer srv.Close()

	client := NewMondayClient(srv.URL, "test-token")
	_, err := client.FetchBoard(context.Background(), "987654")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestFetchBoardNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewMondayClient(srv.URL, "test-token")
	_, err := client.FetchBoard(context.Background(), "987654")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-200 status")
}

func TestFetchBoardTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewMondayClient(srv.URL, "test-token")
	_, err := client.FetchBoard(context.Background(), "987654")
	require.Error(t, err)
}
