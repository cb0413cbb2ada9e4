package api

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// MessageType names the kinds of websocket messages.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeEngine    MessageType = "engine"
	MessageTypeSync      MessageType = "sync"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is a websocket message in either direction.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the payload of an error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

func newMessage(typ MessageType, payload interface{}) Message {
	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(ErrorPayload{Error: err.Error()})
		typ = MessageTypeError
	}
	return Message{Type: typ, Payload: data}
}

func errorMessage(err error) Message {
	return newMessage(MessageTypeError, ErrorPayload{Error: err.Error()})
}

// HandleSession runs a play session on one game. The client receives the
// current game on connect and after every move. A human move is answered
// by the engine when auto reply is enabled and the game is still on.
func (s *Server) HandleSession(c *websocket.Conn) {
	id := c.Params("id")
	defer c.Close()

	reply, err := s.handleMessage(id, Message{Type: MessageTypeSync})
	if err != nil {
		_ = c.WriteJSON(errorMessage(err))
		return
	}
	for _, msg := range reply {
		if err := c.WriteJSON(msg); err != nil {
			return
		}
	}

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Printf("game %s: read error: %v", id, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = []Message{errorMessage(errors.Wrap(err, "malformed message"))}
		} else if reply, err = s.handleMessage(id, msg); err != nil {
			reply = append(reply, errorMessage(err))
		}
		for _, out := range reply {
			if err := c.WriteJSON(out); err != nil {
				s.log.Printf("game %s: write error: %v", id, err)
				return
			}
		}
	}
}

// handleMessage applies one client message to game id and returns the
// messages to send back. Messages produced before a failure are returned
// together with the error.
func (s *Server) handleMessage(id string, msg Message) ([]Message, error) {
	switch msg.Type {
	case MessageTypeSync:
		game, err := s.store.Get(id)
		if err != nil {
			return nil, err
		}
		return []Message{newMessage(MessageTypeGameState, gameResponse(game, false))}, nil

	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, errors.Wrap(err, "malformed move")
		}
		game, err := s.store.Advance(id, func(state chess.GameState) (chess.GameState, error) {
			return playMove(state, req)
		})
		if err != nil {
			return nil, err
		}
		out := []Message{newMessage(MessageTypeGameState, gameResponse(game, false))}
		if !s.cfg.Session.AutoReply || !inProgress(game.State) {
			return out, nil
		}
		game, _, err = s.engineMove(id)
		if err != nil {
			return out, err
		}
		return append(out, newMessage(MessageTypeGameState, gameResponse(game, false))), nil

	case MessageTypeEngine:
		game, _, err := s.engineMove(id)
		if err != nil {
			return nil, err
		}
		return []Message{newMessage(MessageTypeGameState, gameResponse(game, false))}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", msg.Type)
}
