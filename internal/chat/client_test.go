package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FieldPriority(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantText   string
		wantThread string
	}{
		{"text wins over message", `{"text":"a","message":"b","content":"c"}`, "a", ""},
		{"message wins over content", `{"message":"b","content":"c"}`, "b", ""},
		{"content alone", `{"content":"c"}`, "c", ""},
		{"thread_id wins over threadId", `{"text":"a","thread_id":"t1","threadId":"t2"}`, "a", "t1"},
		{"threadId alone", `{"text":"a","threadId":"t2"}`, "a", "t2"},
		{"bare json string", `"hola"`, "hola", ""},
		{"plain text body", `hola sin json`, "hola sin json", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Normalize([]byte(tc.raw), "")
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, res.Text)
			assert.Equal(t, tc.wantThread, res.ThreadID)
		})
	}
}

func TestNormalize_FallbackThread(t *testing.T) {
	res, err := Normalize([]byte(`{"text":"a"}`), "thread-7")
	require.NoError(t, err)
	assert.Equal(t, "thread-7", res.ThreadID)
}

func TestNormalize_NoTextField(t *testing.T) {
	_, err := Normalize([]byte(`{"threadId":"t2"}`), "")
	require.Error(t, err)

	_, err = Normalize([]byte(``), "")
	require.Error(t, err)
}

func TestClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hola", body["message"])
		assert.Equal(t, "thread-1", body["thread_id"])
		json.NewEncoder(w).Encode(map[string]any{"content": "respuesta", "threadId": "thread-2"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	res, err := client.Complete(context.Background(), "hola", "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "respuesta", res.Text)
	assert.Equal(t, "thread-2", res.ThreadID)
}

func TestClient_CompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Complete(context.Background(), "hola", "")
	require.Error(t, err)
}
