package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
)

const qrSize = 320

// RoomLister is the read side of the room manager.
type RoomLister interface {
	List() []core.RoomInfo
	Get(id domain.RoomID) (core.RoomService, bool)
}

type RoomRequest struct {
	ID string `uri:"id" binding:"required,max=128"`
}

type RoomsResponse struct {
	Rooms []core.RoomInfo `json:"rooms"`
	Count int             `json:"count"`
}

// Handlers serves the read-only room API.
type Handlers struct {
	Rooms RoomLister
	// PublicURL prefixes share links; the request host is used when empty.
	PublicURL string
}

func (h *Handlers) Register(r gin.IRoutes) {
	r.GET("/healthz", h.health)
	r.GET("/api/rooms", h.listRooms)
	r.GET("/api/rooms/:id", h.getRoom)
	r.GET("/api/rooms/:id/qr", h.roomQR)
}

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) listRooms(c *gin.Context) {
	rooms := h.Rooms.List()
	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms, Count: len(rooms)})
}

func (h *Handlers) getRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	room, ok := h.Rooms.Get(domain.RoomID(req.ID))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, room.Info())
}

// roomQR renders the join link of a room as a PNG. The room does not need
// to exist yet: scanning the code creates it.
func (h *Handlers) roomQR(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	link := h.joinLink(c.Request, req.ID)
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Str("module", "transport.http").Str("room", req.ID).Msg("qr generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handlers) joinLink(r *http.Request, roomID string) string {
	base := strings.TrimSuffix(h.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return base + "/?room=" + url.QueryEscape(roomID)
}
