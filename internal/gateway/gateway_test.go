package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat/message", r.URL.Path)

		var req ChatTurnRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s1", req.SessionID)
		assert.Equal(t, "u1", req.UserID)
		assert.Equal(t, "I worked at Acme", req.Message)

		_ = json.NewEncoder(w).Encode(ChatTurnResult{Response: "Great, tell me more", IsCompleted: false})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.SendMessage(context.Background(), ChatTurnRequest{
		SessionID: "s1", UserID: "u1", Message: "I worked at Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Great, tell me more", result.Response)
	assert.False(t, result.IsCompleted)
}

func TestSendMessage_MissingFieldsRejectedLocally(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.SendMessage(context.Background(), ChatTurnRequest{SessionID: "s1"})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestSendMessage_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"session not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.SendMessage(context.Background(), ChatTurnRequest{
		SessionID: "s1", UserID: "u1", Message: "hello",
	})
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
	assert.Equal(t, "session not found", gwErr.Detail)
	assert.Contains(t, err.Error(), "session not found")
}

func TestChatStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/status/s1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(ChatStatusResult{SessionID: "s1", IsComplete: true, QuestionCount: 7})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	status, err := client.ChatStatus(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, status.IsComplete)
	assert.Equal(t, 7, status.QuestionCount)
}

func TestFetchKnowledge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge/s1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"skills":["Go","SQL"]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	raw, err := client.FetchKnowledge(context.Background(), "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills":["Go","SQL"]}`, string(raw))
}

func TestUpdateKnowledge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/knowledge/update", r.URL.Path)

		var req KnowledgeUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "root", req.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	err := client.UpdateKnowledge(context.Background(), KnowledgeUpdate{
		SessionID: "s1", Path: "root", Value: json.RawMessage(`{"skills":[]}`),
	})
	require.NoError(t, err)
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate/", r.URL.Path)

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "backend engineer role", req.JDText)
		_ = json.NewEncoder(w).Encode(GenerationJob{JobID: "j1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	job, err := client.Generate(context.Background(), GenerateRequest{
		SessionID: "s1", JDText: "backend engineer role",
	})
	require.NoError(t, err)
	assert.Equal(t, "j1", job.JobID)
}

func TestGenerate_EmptyJDRejectedLocally(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Generate(context.Background(), GenerateRequest{SessionID: "s1"})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestDownloadResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate/download/j1", r.URL.Path)
		_, _ = w.Write([]byte("artifact bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	var buf bytes.Buffer
	require.NoError(t, client.DownloadResume(context.Background(), "j1", &buf))
	assert.Equal(t, "artifact bytes", buf.String())
}

func TestPreviewResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate/preview/j1", r.URL.Path)
		_, _ = w.Write([]byte("# Resume\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	md, err := client.PreviewResume(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, "# Resume\n", md)
}

func TestUploadResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/resume", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.pdf", files[0].Filename)
		assert.Equal(t, "b.pdf", files[1].Filename)

		_ = json.NewEncoder(w).Encode(UploadResult{
			SessionID:      "s1",
			FirstQuestion:  "Q1",
			FilesProcessed: 2,
			Filenames:      []string{"a.pdf", "b.pdf"},
		})
	}))
	defer server.Close()

	dir := t.TempDir()
	paths := []string{dir + "/a.pdf", dir + "/b.pdf"}
	for _, p := range paths {
		require.NoError(t, writeFile(p, []byte("%PDF-1.4 test")))
	}

	client := NewClient(server.URL, 0)
	result, err := client.UploadResume(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, "s1", result.SessionID)
	assert.Equal(t, "Q1", result.FirstQuestion)
	assert.Equal(t, 2, result.FilesProcessed)
}

func TestUploadResume_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"'notes.txt' is not a PDF file"}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := dir + "/a.pdf"
	require.NoError(t, writeFile(path, []byte("%PDF-1.4 test")))

	client := NewClient(server.URL, 0)
	_, err := client.UploadResume(context.Background(), []string{path})
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Contains(t, gwErr.Detail, "not a PDF")
}
