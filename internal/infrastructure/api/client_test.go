package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/testutil"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveCall(op, method string, status int, kind string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op+" "+kind)
}

func newTestClient(t *testing.T, backend *testutil.FakeBackend, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(
		config.APIConfig{Timeout: 5 * time.Second, RetryCount: 2, RetryWaitTime: time.Millisecond, RetryMaxWaitTime: 5 * time.Millisecond},
		config.SiteConfig{APIBaseURL: backend.APIBaseURL() + "/", BackendURL: backend.Server.URL},
		opts...,
	)
	require.NoError(t, err)
	return c
}

func newTestServices(t *testing.T) (*Services, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	return NewServices(newTestClient(t, backend)), backend
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.APIConfig{}, config.SiteConfig{})
	assert.Error(t, err)
}

func TestInterpret(t *testing.T) {
	read := call{failMsg: "Failed to load projects"}
	write := call{auth: true, failMsg: "Failed to create project"}

	tests := []struct {
		name     string
		status   int
		body     string
		cl       call
		wantKind ErrorKind
		wantMsg  string
		wantRaw  string
	}{
		{name: "plain payload", status: 200, body: `[{"id":1}]`, cl: read, wantRaw: `[{"id":1}]`},
		{name: "envelope is unwrapped", status: 200, body: `{"success":true,"data":{"id":2},"message":"ok"}`, cl: read, wantRaw: `{"id":2}`},
		{name: "object with data only is kept", status: 200, body: `{"data":1}`, cl: read, wantRaw: `{"data":1}`},
		{name: "unsuccessful envelope", status: 200, body: `{"success":false,"data":null,"message":"Duplicate title"}`, cl: write, wantKind: KindHTTP, wantMsg: "Duplicate title"},
		{name: "message field", status: 400, body: `{"message":"Title is required"}`, cl: write, wantKind: KindHTTP, wantMsg: "Title is required"},
		{name: "error field", status: 500, body: `{"error":"boom"}`, cl: read, wantKind: KindHTTP, wantMsg: "boom"},
		{name: "nested error message", status: 422, body: `{"error":{"message":"bad date"}}`, cl: read, wantKind: KindHTTP, wantMsg: "bad date"},
		{name: "no body", status: 502, body: ``, cl: read, wantKind: KindHTTPNoBody, wantMsg: "Failed to load projects"},
		{name: "html body", status: 500, body: `<html>oops</html>`, cl: read, wantKind: KindHTTPNoBody, wantMsg: "Failed to load projects"},
		{name: "401 on authenticated call", status: 401, body: `{"message":"expired"}`, cl: write, wantKind: KindUnauthorized, wantMsg: AccessDeniedMessage},
		{name: "403 on authenticated call", status: 403, body: ``, cl: write, wantKind: KindUnauthorized, wantMsg: AccessDeniedMessage},
		{name: "401 on public call", status: 401, body: `{"message":"Invalid username or password"}`, cl: read, wantKind: KindHTTP, wantMsg: "Invalid username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := interpret(tt.status, []byte(tt.body), tt.cl)
			if tt.wantKind == 0 {
				require.Nil(t, err)
				assert.JSONEq(t, tt.wantRaw, payload.Raw)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestClient_RetriesReadsOnly(t *testing.T) {
	svc, backend := newTestServices(t)
	ctx := WithToken(context.Background(), backend.ValidToken())

	backend.FailWith("GET /projects", http.StatusInternalServerError)
	backend.FailWith("POST /projects", http.StatusInternalServerError)

	res := svc.Projects.GetAll(ctx)
	require.False(t, res.OK())
	assert.Equal(t, KindHTTP, res.Err.Kind)
	assert.Equal(t, 3, backend.Calls("GET /projects"))

	created := svc.Projects.Create(ctx, testProject("Retry"))
	require.False(t, created.OK())
	assert.Equal(t, 1, backend.Calls("POST /projects"))
}

func TestClient_Cancellation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := svc.Skills.GetAll(ctx)
	require.False(t, res.OK())
	assert.Equal(t, KindNetwork, res.Err.Kind)
	assert.Equal(t, "Request cancelled", res.Message())
	assert.ErrorIs(t, res.Error(), context.Canceled)
}

func TestClient_Unreachable(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := newTestClient(t, backend)
	backend.Server.Close()

	res := NewServices(c).Educations.GetAll(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, KindNetwork, res.Err.Kind)
	assert.Equal(t, "Failed to load educations", res.Message())
}

func TestClient_ObservesEveryCall(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	obs := &recordingObserver{}
	svc := NewServices(newTestClient(t, backend, WithObserver(obs)))

	svc.Achievements.GetAll(context.Background())
	svc.Achievements.Create(context.Background(), testAchievement("No token"))

	assert.Equal(t, []string{"achievements.getAll ok", "achievements.create unauthorized"}, obs.calls)
}

func TestResult(t *testing.T) {
	ok := Ok(3)
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Message())
	assert.NoError(t, ok.Error())
	assert.False(t, ok.Unauthorized())

	failed := Fail[int](&Error{Kind: KindUnauthorized, Message: AccessDeniedMessage})
	assert.False(t, failed.OK())
	assert.True(t, failed.Unauthorized())
	assert.Equal(t, AccessDeniedMessage, failed.Message())

	apiErr, found := AsError(failed.Error())
	require.True(t, found)
	assert.Equal(t, KindUnauthorized, apiErr.Kind)
	assert.Equal(t, "unauthorized", apiErr.Kind.String())
}
