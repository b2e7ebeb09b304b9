package http

import (
	"context"
	"path/filepath"

	"github.com/dkeye/pong/internal/adapters/signal"
	"github.com/dkeye/pong/internal/app/orch"
	"github.com/dkeye/pong/internal/config"
	transport "github.com/dkeye/pong/internal/transport/http"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	sessionName     = "PongSessions"
	clientTokenKey  = "client_token"
	clientTokenLife = 3600 * 24 * 7
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware keeps a stable browser token in the session cookie.
// It only labels logs; game identity is per socket.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = genClientToken()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

// SetupRouter mounts the client, the room API and the WebSocket endpoint.
// ctx bounds the lifetime of every socket.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: clientTokenLife, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticPath, "index.html"))
	})

	api := &transport.Handlers{Rooms: o.Rooms, PublicURL: cfg.PublicURL}
	api.Register(r)

	ctrl := signal.NewSignalWSController(o, signal.Options{
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		JoinLimit:  cfg.JoinRateLimit,
		JoinWindow: cfg.JoinRateWindow,
	})
	r.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
