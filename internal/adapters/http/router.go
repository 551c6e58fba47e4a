package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/connectly/connectly/internal/adapters/signal"
	"github.com/connectly/connectly/internal/config"
	"github.com/connectly/connectly/internal/core"
	"github.com/connectly/connectly/internal/hub"
	"github.com/connectly/connectly/internal/store"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware pins a stable opaque token to the browser so
// reconnects of the same client are correlatable in logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, h *hub.Hub, st *store.Store, reg *core.Registry) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	cookieStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ConnectlySessions", cookieStore))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	mh := &MeetingHandlers{Store: st, Registry: reg, Cfg: cfg}

	api := r.Group("/api")
	api.POST("/meetings", mh.CreateMeeting)
	api.POST("/verify_meeting", mh.VerifyMeeting)
	api.POST("/join_meeting", mh.JoinMeeting)
	api.GET("/rtc-config", mh.RTCConfig)
	api.GET("/rooms", mh.Rooms)

	ctl := signal.NewController(h, cfg)
	r.GET("/ws/meet/:code", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("ct", c.GetString("client_token")).Str("code", c.Param("code")).Msg("ws meet endpoint hit")
		ctl.HandleMeeting(ctx, c)
	})

	return r
}
