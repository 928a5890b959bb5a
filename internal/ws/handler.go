package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"promotor/internal/get_token"
)

type Handler struct {
	hub *Hub
}

func NewWsHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Acompanhar godoc
// @Summary Stream de eventos de rota.
// @Description Abre a conexão websocket que recebe as transições de status.
// @Tags Ws
// @Router /ws [get]
// @Security ApiKeyAuth
func (h *Handler) Acompanhar(c echo.Context) error {
	payload := get_token.GetPromotorPayloadToken(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	client := &Client{
		Conn:       conn,
		Message:    make(chan []byte, 10),
		PromotorId: payload.ID,
		Nome:       payload.Nome,
		Payload:    payload,
	}

	h.hub.Register <- client

	go client.writeMessage()
	go client.readMessage(h.hub)

	return nil
}
