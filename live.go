package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/text/message"
)

// Messages coming from the game table
type ClientMessage struct {
	Type  string `json:"type"`            // "level", "turn", "draw"
	Level string `json:"level,omitempty"` // level
}

// CardView is a card with its text already localised.
type CardView struct {
	ID          string `json:"id"`
	Instruction string `json:"instruction"`
	Target      string `json:"target"`
	Duration    string `json:"duration,omitempty"`
}

// RoomMessage is broadcast to every live client after a table change.
type RoomMessage struct {
	Type       string    `json:"type"` // "room"
	Room       RoomState `json:"room"`
	LevelLabel string    `json:"level_label"`
	TurnLabel  string    `json:"turn_label"`
	TurnName   string    `json:"turn_name,omitempty"`
	Card       *CardView `json:"card,omitempty"`
}

// SimpleMessage is for notices sent to a single client ("no_cards").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn    *websocket.Conn
	send    chan any
	printer *message.Printer
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func newCardView(p *message.Printer, c *GameCard) *CardView {
	if c == nil {
		return nil
	}

	v := &CardView{
		ID:          c.ID,
		Instruction: p.Sprintf(c.Instruction),
		Target:      p.Sprintf(string(c.Target)),
	}
	if c.Duration > 0 {
		v.Duration = p.Sprintf("%d seconds", c.Duration)
	}

	return v
}

func newRoomMessage(p *message.Printer, room RoomState) RoomMessage {
	msg := RoomMessage{
		Type:       "room",
		Room:       room,
		LevelLabel: p.Sprintf(string(room.Level)),
		TurnLabel:  p.Sprintf(string(room.ActiveTurn)),
		Card:       newCardView(p, room.CurrentCard),
	}
	if partner := room.Partner(room.ActiveTurn); partner != nil {
		msg.TurnName = partner.Name
	}

	return msg
}

// broadcastRoomLocked assumes s.mu is already held.
func (s *Session) broadcastRoomLocked() {
	room := s.state.Room.clone()

	for c := range s.clients {
		select {
		case c.send <- newRoomMessage(c.printer, room):
		default:
			delete(s.clients, c)
			close(c.send)
		}
	}

	s.state.Room.IsSyncing = len(s.clients) > 0
}

func (s *Session) register(c *Client, m *Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c] = true
	s.state.Room.IsSyncing = true
	m.liveClients.Inc()

	s.broadcastRoomLocked()
}

func (s *Session) unregister(c *Client, m *Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	m.liveClients.Dec()

	s.state.Room.IsSyncing = len(s.clients) > 0
}

// handleTableCommand applies one game table command and broadcasts the room.
func (s *Session) handleTableCommand(cfg *Config, m *Metrics, c *Client, msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Step != StepGame {
		return
	}

	room := &s.state.Room

	switch msg.Type {
	case "level":
		prev := room.Level
		if err := room.UpdateLevel(Level(msg.Level)); err != nil {
			return
		}
		if room.Level.Rank() < prev.Rank() {
			logf(cfg, "TABLE: %s eased back from %s to %s", room.ID, prev, room.Level)
		} else {
			logf(cfg, "TABLE: %s moved to level %s", room.ID, room.Level)
		}
	case "turn":
		room.CompleteTurn()
	case "draw":
		card, err := room.DrawCard(Deck(), s.rng)
		if errors.Is(err, ErrNoCards) {
			if !s.clients[c] {
				return
			}
			select {
			case c.send <- SimpleMessage{
				Type:    "no_cards",
				Message: c.printer.Sprintf("No card fits right now. Try another level."),
			}:
			default:
			}
			return
		}
		m.cardsDrawn.WithLabelValues(string(card.Level)).Inc()
		logf(cfg, "TABLE: %s drew %s for %s", room.ID, card.ID, room.ActiveTurn)
	default:
		return
	}

	s.broadcastRoomLocked()
}

// serveLive upgrades to the game table websocket for the caller's session.
func serveLive(cfg *Config, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil || c.Value == "" {
			http.Error(w, "missing session", http.StatusBadRequest)
			return
		}

		sess := sm.get(c.Value)
		tag, _ := resolveLanguage(r, cfg.language)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:    conn,
			send:    make(chan any, 8),
			printer: printerFor(tag),
		}

		sess.register(client, sm.metrics)

		go client.writePump()
		client.readPump(cfg, sm.metrics, sess)
	}
}

func (c *Client) readPump(cfg *Config, m *Metrics, s *Session) {
	defer func() {
		s.unregister(c, m)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Time{})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		s.handleTableCommand(cfg, m, c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
