package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-ladder/internal/app"
	"quiz-ladder/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type gamePayload struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
	Kind   string `json:"kind"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type sessionPayload struct {
	PlayerID     string `json:"playerId"`
	Balance      int64  `json:"balance"`
	ActiveGameID string `json:"activeGameId,omitempty"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and dispatches game actions for one player.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- h.session(ctx, playerID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		send <- h.dispatch(ctx, playerID, inbound)
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) session(ctx context.Context, playerID string) outboundMessage {
	balance, err := h.service.Balance(ctx, playerID)
	if err != nil {
		return errorMessage(err)
	}
	out := sessionPayload{PlayerID: playerID, Balance: balance}
	active, ok, err := h.service.ActiveGame(ctx, playerID)
	if err != nil {
		return errorMessage(err)
	}
	if ok {
		out.ActiveGameID = active.ID
	}
	return outboundMessage{Type: "session", Payload: out}
}

func (h *WSHandler) dispatch(ctx context.Context, playerID string, inbound inboundMessage) outboundMessage {
	var payload gamePayload
	if len(inbound.Payload) > 0 {
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return badRequest("invalid payload")
		}
	}

	var (
		game    domain.Game
		correct *bool
		err     error
	)
	switch inbound.Type {
	case "newGame":
		game, err = h.service.CreateGame(ctx, playerID)
	case "state":
		game, err = h.state(ctx, playerID, payload.GameID)
	case "answer":
		var ok bool
		game, ok, err = h.service.Answer(ctx, playerID, payload.GameID, payload.Letter)
		correct = &ok
	case "takeMoney":
		game, err = h.service.TakeMoney(ctx, playerID, payload.GameID)
	case "help":
		game, err = h.service.Help(ctx, playerID, payload.GameID, payload.Kind)
	default:
		return badRequest("unsupported message type")
	}
	if err != nil {
		return errorMessage(err)
	}

	balance, err := h.service.Balance(ctx, playerID)
	if err != nil {
		return errorMessage(err)
	}
	view := newGameView(&game, balance)
	view.AnswerCorrect = correct
	return outboundMessage{Type: "game", Payload: view}
}

// state falls back to the player's active game when no ID is given.
func (h *WSHandler) state(ctx context.Context, playerID, gameID string) (domain.Game, error) {
	if gameID != "" {
		return h.service.Game(ctx, playerID, gameID)
	}
	game, ok, err := h.service.ActiveGame(ctx, playerID)
	if err != nil {
		return domain.Game{}, err
	}
	if !ok {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return game, nil
}

func badRequest(message string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Code: "bad_request", Message: message}}
}

func errorMessage(err error) outboundMessage {
	code := errorCode(err)
	message := err.Error()
	if code == "internal" {
		log.Printf("game action failed: %v", err)
		message = "internal error"
	}
	return outboundMessage{Type: "error", Payload: errorPayload{Code: code, Message: message}}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrGameNotActive):
		return "game_not_active"
	case errors.Is(err, domain.ErrGameInProgress):
		return "game_in_progress"
	case errors.Is(err, domain.ErrInsufficientQuestions):
		return "insufficient_questions"
	case errors.Is(err, domain.ErrAlreadyUsed):
		return "already_used"
	case errors.Is(err, domain.ErrUnknownHelpKind):
		return "unknown_help_kind"
	case errors.Is(err, domain.ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return "invalid_identifier"
	}
	return "internal"
}
