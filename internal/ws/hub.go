package ws

import (
	"encoding/json"
	"sync"

	"promotor/internal/rota"
)

type Hub struct {
	Clients    map[int64]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
	Mu         *sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[int64]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte, 5),
		Mu:         &sync.RWMutex{},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.Register:
			h.Mu.Lock()
			if _, ok := h.Clients[cl.PromotorId]; !ok {
				h.Clients[cl.PromotorId] = cl
			}
			h.Mu.Unlock()

		case cl := <-h.Unregister:
			h.Mu.Lock()
			if _, ok := h.Clients[cl.PromotorId]; ok {
				delete(h.Clients, cl.PromotorId)
				close(cl.Message)
			}
			h.Mu.Unlock()

		case m := <-h.Broadcast:
			h.Mu.RLock()
			for _, cl := range h.Clients {
				select {
				case cl.Message <- m:
				default:
				}
			}
			h.Mu.RUnlock()
		}
	}
}

// TransmitirTransicao publica a mudança de status para os apps
// conectados. Entrega melhor esforço; cliente lento perde o evento.
func (h *Hub) TransmitirTransicao(ev rota.Evento) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}
