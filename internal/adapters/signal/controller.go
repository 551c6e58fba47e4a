// Package signal is the WebSocket transport adapter: it owns socket
// lifecycle and the read/write pumps, and forwards raw frames to the
// hub. Protocol interpretation happens in the hub, not here.
package signal

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/connectly/connectly/internal/config"
	"github.com/connectly/connectly/internal/core"
	"github.com/connectly/connectly/internal/domain"
	"github.com/connectly/connectly/internal/hub"
)

type Controller struct {
	Hub *hub.Hub
	Cfg *config.Config
}

func NewController(h *hub.Hub, cfg *config.Config) *Controller {
	return &Controller{Hub: h, Cfg: cfg}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleMeeting upgrades the socket for /ws/meet/:code and joins it to
// the room named by the path. Access control happened upstream in the
// HTTP layer; by the time a client reaches here it may enter the room.
func (ctl *Controller) HandleMeeting(ctx context.Context, c *gin.Context) {
	roomID := domain.RoomID(c.Param("code"))
	cid := core.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("room", string(roomID)).Str("cid", string(cid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.Cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.Cfg.ReadLimit)
	}

	conn := newWSConn(ws)
	ctl.Hub.HandleOpen(roomID, cid, conn)

	// Teardown must run exactly once per handle no matter how either
	// pump dies: normal close, read error, or context cancellation.
	var once sync.Once
	teardown := func() {
		once.Do(func() {
			conn.Close()
			ctl.Hub.HandleClose(roomID, cid)
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		defer teardown()
		ctl.writePump(ctx, conn)
	}()
	go func() {
		defer cancel()
		defer teardown()
		ctl.readPump(ctx, roomID, cid, conn)
	}()
}
