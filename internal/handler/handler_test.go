package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"offplanbot/internal/constant"
	"offplanbot/internal/model"
	"offplanbot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	records []model.Project
}

func (s *stubSearcher) SearchProjects(context.Context, *model.SearchRequest) (*model.ProjectSearchResponse, error) {
	return &model.ProjectSearchResponse{Data: s.records}, nil
}

type stubHistory struct {
	records []model.SearchLogRecord
	err     error
	limit   int
}

func (s *stubHistory) RecentSearches(_ context.Context, _ string, limit int) ([]model.SearchLogRecord, error) {
	s.limit = limit
	return s.records, s.err
}

type stubFeedback struct {
	calls []string
	err   error
}

func (s *stubFeedback) LogFeedback(_ context.Context, sessionID, projectID, action string) error {
	s.calls = append(s.calls, sessionID+"|"+projectID+"|"+action)
	return s.err
}

type testServer struct {
	router   *gin.Engine
	sessions *service.Registry
	history  *stubHistory
	feedback *stubFeedback
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	searcher := &stubSearcher{records: []model.Project{
		{ID: "cc3e22bb-5ee1-443a-a4b0-47c33f0d9040", Title: "Marina Vista", Description: "Waterfront"},
	}}
	chat := service.NewChatService(service.NewExtractor(), searcher, service.WithPicker(func(int) int { return 0 }))

	ts := &testServer{
		router:   gin.New(),
		sessions: service.NewRegistry(),
		history:  &stubHistory{},
		feedback: &stubFeedback{},
	}
	RegisterRoutes(ts.router.Group("/api/v1"),
		NewChatHandler(chat, ts.sessions, ts.history),
		NewFeedbackHandler(ts.feedback),
	)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) createSession(t *testing.T) model.SessionResponse {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp model.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateAndGetSession(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createSession(t)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, "budget", created.Step)
	require.Len(t, created.Messages, 1)
	assert.Equal(t, constant.BudgetOptions(), created.Messages[0].Options)

	w := ts.do(t, http.MethodGet, "/api/v1/sessions/"+created.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.SessionID, got.SessionID)
	assert.Len(t, got.Messages, 1)
}

func TestGetSession_NotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodDelete, "/api/v1/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessage(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/messages", model.TextRequest{Text: "EMAAR in Dubai Marina"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "budget", resp.Step)
	require.Len(t, resp.Messages, 4)
	assert.Equal(t, model.SenderUser, resp.Messages[0].Sender)
	assert.True(t, resp.Messages[2].IsTyping)
	require.Len(t, resp.Messages[3].Properties, 1)
	assert.Equal(t, "/projects/cc3e22bb-5ee1-443a-a4b0-47c33f0d9040", resp.Messages[3].Properties[0].Link)
}

func TestSendMessage_BadRequest(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/messages", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/messages", model.TextRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/sessions/missing/messages", model.TextRequest{Text: "EMAAR"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectOption(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/options", model.OptionRequest{Option: constant.BUTTON_UNDER_1M})
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "developer", resp.Step)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, constant.DeveloperOptions(), resp.Messages[2].Options)
}

func TestStream(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/stream", model.StreamRequest{Text: "Sobha"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Equal(t, 4, strings.Count(body, "event: message\n"))
	assert.Contains(t, body, `"is_typing":true`)
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: {\"session_id\":\""+created.SessionID+"\",\"step\":\"budget\"}\n\n"))
}

func TestStream_BadRequest(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/stream", model.StreamRequest{Text: "a", Option: "b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/stream", model.StreamRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearches(t *testing.T) {
	ts := newTestServer(t)
	ts.history.records = []model.SearchLogRecord{{ID: 1, SessionID: "s1", ResultCount: 3}}

	w := ts.do(t, http.MethodGet, "/api/v1/sessions/s1/searches?limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxHistoryLimit, ts.history.limit)
	assert.Contains(t, w.Body.String(), `"result_count":3`)

	w = ts.do(t, http.MethodGet, "/api/v1/sessions/s1/searches?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.history.err = errors.New("db down")
	w = ts.do(t, http.MethodGet, "/api/v1/sessions/s1/searches", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, defaultHistoryLimit, ts.history.limit)
}

func TestSearches_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chat := service.NewChatService(service.NewExtractor(), &stubSearcher{})
	RegisterRoutes(router.Group("/api/v1"), NewChatHandler(chat, service.NewRegistry(), nil), NewFeedbackHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/s1/searches", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFeedback(t *testing.T) {
	ts := newTestServer(t)
	projectID := "cc3e22bb-5ee1-443a-a4b0-47c33f0d9040"

	tests := []struct {
		name     string
		req      model.FeedbackRequest
		wantCode int
	}{
		{name: "click", req: model.FeedbackRequest{SessionID: "s1", ProjectID: projectID, Action: "click"}, wantCode: http.StatusOK},
		{name: "unknown action", req: model.FeedbackRequest{SessionID: "s1", ProjectID: projectID, Action: "like"}, wantCode: http.StatusBadRequest},
		{name: "bad project id", req: model.FeedbackRequest{SessionID: "s1", ProjectID: "42", Action: "click"}, wantCode: http.StatusBadRequest},
		{name: "missing fields", req: model.FeedbackRequest{Action: "click"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/feedback", tt.req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
	assert.Equal(t, []string{"s1|" + projectID + "|click"}, ts.feedback.calls)

	ts.feedback.err = errors.New("db down")
	w := ts.do(t, http.MethodPost, "/api/v1/feedback", model.FeedbackRequest{SessionID: "s1", ProjectID: projectID, Action: "contact"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
