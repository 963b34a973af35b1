package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"roomwire/internal/core"
	"roomwire/internal/proto"
)

// onlineUsersHandler serves the presence snapshot. Stateless and
// read-only; the room filter is applied client-side.
func onlineUsersHandler(hub *core.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := hub.Directory().Snapshot()
		users := make([]proto.OnlineUser, 0, len(snapshot))
		for _, p := range snapshot {
			users = append(users, proto.OnlineUser{
				ID:       p.ID,
				Username: p.Username,
				Room:     p.Room,
			})
		}
		c.JSON(stdhttp.StatusOK, proto.OnlineUsersResponse{OnlineUsers: users})
	}
}
