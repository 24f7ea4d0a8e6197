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

	"github.com/harits/aksi/pkg/dispatcher"
	"github.com/harits/aksi/pkg/executor"
	"github.com/harits/aksi/pkg/model"
	"github.com/harits/aksi/pkg/registry"
)

type offlineAdvisor struct{}

func (offlineAdvisor) Available() bool  { return false }
func (offlineAdvisor) Provider() string { return "none" }
func (offlineAdvisor) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return "", model.ErrUnavailable
}

func testServer(t *testing.T) *Server {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.Register(registry.ToolDefinition{
		Name:        "get_weather",
		Description: "Get the current weather for a location",
		Parameters: []registry.ToolParameter{
			{Name: "location", Type: "string", Description: "The city", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			return "Weather for " + args["location"].(string), nil
		},
	}))

	d := dispatcher.New(reg, executor.New(reg, 0), offlineAdvisor{}, model.Config{}, nil)
	return New("127.0.0.1:0", d, offlineAdvisor{})
}

func postDispatch(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/dispatch", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestDispatchEndpoint(t *testing.T) {
	server := testServer(t)

	recorder := postDispatch(t, server, `{"query": "What's the weather in Paris?"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var response struct {
		Success   bool   `json:"success"`
		Narrative string `json:"narrative"`
		Results   []struct {
			Tool    string `json:"tool"`
			Success bool   `json:"success"`
			Data    string `json:"data"`
		} `json:"results"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.True(t, response.Success)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "get_weather", response.Results[0].Tool)
	assert.True(t, response.Results[0].Success)
	assert.Contains(t, response.Narrative, "Weather for Paris")
	assert.Empty(t, response.Error)
}

func TestDispatchEndpoint_Unrecognized(t *testing.T) {
	server := testServer(t)

	recorder := postDispatch(t, server, `{"query": "asdkjfh random gibberish"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, false, response["success"])
	assert.Contains(t, response["error"], "unrecognized request")
}

func TestDispatchEndpoint_BadRequests(t *testing.T) {
	server := testServer(t)

	recorder := postDispatch(t, server, `not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = postDispatch(t, server, `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	req := httptest.NewRequest(http.MethodGet, "/dispatch", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, false, response["model_available"])
	assert.Equal(t, "none", response["model_provider"])
}
