package ws

import (
	"github.com/gorilla/websocket"

	"promotor/internal/get_token"
)

type Client struct {
	Conn       *websocket.Conn              `json:"conn"`
	Message    chan []byte                  `json:"message"`
	PromotorId int64                        `json:"promotor_id"`
	Nome       string                       `json:"nome"`
	Payload    get_token.PayloadPromotorDTO `json:"payload"`
}

func (c *Client) writeMessage() {
	defer func() {
		err := c.Conn.Close()
		if err != nil {
			return
		}
	}()

	for {
		message, ok := <-c.Message
		if !ok {
			return
		}

		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			return
		}
	}
}

func (c *Client) readMessage(hub *Hub) {
	defer func() {
		hub.Unregister <- c
		err := c.Conn.Close()
		if err != nil {
			return
		}
	}()

	// O app só escuta; a leitura existe para detectar o fechamento.
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
