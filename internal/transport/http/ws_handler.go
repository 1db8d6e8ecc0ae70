package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"qa-quiz-service/internal/app"
	"qa-quiz-service/internal/domain"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
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

type fetchPayload struct {
	ID string `json:"id"`
}

type quizPayload struct {
	ID   string            `json:"id"`
	Seed int64             `json:"seed"`
	Quiz domain.QuizRecord `json:"quiz"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and serves generate/fetch requests
// until the client disconnects. Every request is answered in order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxDocumentBytes)

	out := newOutbox(16)

	// single writer goroutine; gorilla connections allow one concurrent writer
	go func() {
		defer close(out.done)
		for msg := range out.ch {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// unblocks the pending ReadJSON
				conn.Close()
				return
			}
		}
	}()

	for open := true; open; {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.handle(r.Context(), inbound) {
			if open = out.push(msg); !open {
				break
			}
		}
	}

	close(out.ch)
	<-out.done
}

// handle answers one inbound message.
func (h *WSHandler) handle(ctx context.Context, inbound inboundMessage) []outboundMessage[any] {
	switch inbound.Type {
	case "generate":
		var req domain.GenerateRequest
		if err := json.Unmarshal(inbound.Payload, &req); err != nil {
			return []outboundMessage[any]{errorMessage("invalid generate payload")}
		}
		quiz, err := h.service.Generate(ctx, req)
		if err != nil {
			return []outboundMessage[any]{errorMessage(err.Error())}
		}
		return []outboundMessage[any]{
			{Type: "report", Payload: quiz.Report},
			{Type: "quiz", Payload: quizPayload{ID: quiz.ID, Seed: quiz.Seed, Quiz: quiz.Quiz}},
		}
	case "fetch":
		var payload fetchPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.ID == "" {
			return []outboundMessage[any]{errorMessage("invalid fetch payload")}
		}
		quiz, err := h.service.GetQuiz(ctx, payload.ID)
		if err != nil {
			return []outboundMessage[any]{errorMessage(err.Error())}
		}
		return []outboundMessage[any]{{Type: "quiz", Payload: quizPayload{ID: quiz.ID, Seed: quiz.Seed, Quiz: quiz.Quiz}}}
	default:
		return []outboundMessage[any]{errorMessage("unsupported message type")}
	}
}

// outbox queues messages for the writer goroutine. done closes when the writer stops.
type outbox struct {
	ch   chan outboundMessage[any]
	done chan struct{}
}

func newOutbox(size int) *outbox {
	return &outbox{ch: make(chan outboundMessage[any], size), done: make(chan struct{})}
}

// push queues msg and reports false once the writer has stopped.
func (o *outbox) push(msg outboundMessage[any]) bool {
	select {
	case o.ch <- msg:
		return true
	case <-o.done:
		return false
	}
}

func errorMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
