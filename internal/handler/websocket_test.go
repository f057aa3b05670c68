package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

func TestWebSocketReceivesQuestionEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := ws.NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(newTestServer(t, hub))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/questions", "application/json",
		strings.NewReader(`{"question":"Who painted the Mona Lisa?","answer":"Leonardo da Vinci","difficulty":3,"category":2}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/questions/16", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	readEvent := func() (ws.Message, domain.QuestionEvent) {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		var event domain.QuestionEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		return msg, event
	}

	msg, event := readEvent()
	assert.Equal(t, string(domain.EventQuestionCreated), msg.Type)
	assert.Equal(t, 16, event.QuestionID)
	require.NotNil(t, event.Question)
	assert.Equal(t, "Leonardo da Vinci", event.Question.Answer)
	assert.False(t, event.OccurredAt.IsZero())

	msg, event = readEvent()
	assert.Equal(t, string(domain.EventQuestionDeleted), msg.Type)
	assert.Equal(t, 16, event.QuestionID)
	assert.Nil(t, event.Question)
}
