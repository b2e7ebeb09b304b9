package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/pong/internal/app"
	"github.com/dkeye/pong/internal/app/orch"
	"github.com/dkeye/pong/internal/config"
	"github.com/dkeye/pong/internal/protocol"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>pong</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := &config.Config{
		Mode:       "test",
		StaticPath: static,
		Secret:     "test-secret",
		TickPeriod: time.Hour,
	}
	ctx, cancel := context.WithCancel(context.Background())
	o := orch.New(ctx, app.NewRegistry(), orch.Options{TickPeriod: cfg.TickPeriod})
	t.Cleanup(func() {
		cancel()
		o.Shutdown()
	})
	return SetupRouter(ctx, cfg, o)
}

func TestServesClient(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientTokenCookie(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionName, cookies[0].Name)

	// A returning browser keeps its session without a new cookie.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Result().Cookies())
}

func TestWebSocketRoute(t *testing.T) {
	srv := httptest.NewServer(newRouter(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	env, err := protocol.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.TypePong, env.Type)
}
