package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"qa-quiz-service/internal/domain"
)

func TestWebSocketGenerateFlow(t *testing.T) {
	server := httptest.NewServer(newTestMux())
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	generate := map[string]any{
		"type": "generate",
		"payload": domain.GenerateRequest{
			Text:    labeledDocument(4),
			Options: domain.QuizOptions{NumQuestions: 2},
			Seed:    9,
		},
	}
	if err := conn.WriteJSON(generate); err != nil {
		t.Fatalf("write generate: %v", err)
	}

	// Expect report then quiz.
	_, report := readNext(conn, t, "report")
	if report["format"] != string(domain.FormatLabeledAnswer) {
		t.Fatalf("expected labeled format, got %v", report["format"])
	}
	if warnings, _ := report["warnings"].([]any); len(warnings) != 1 {
		t.Fatalf("expected insufficient pairs warning, got %v", report["warnings"])
	}
	_, quiz := readNext(conn, t, "quiz")
	id, _ := quiz["id"].(string)
	if id == "" {
		t.Fatalf("expected quiz id, got %v", quiz)
	}
	record, _ := quiz["quiz"].(map[string]any)
	if record["total_questions"] != float64(2) {
		t.Fatalf("expected 2 questions, got %v", record["total_questions"])
	}

	if err := conn.WriteJSON(map[string]any{"type": "fetch", "payload": map[string]any{"id": id}}); err != nil {
		t.Fatalf("write fetch: %v", err)
	}
	_, fetched := readNext(conn, t, "quiz")
	if fetched["id"] != id {
		t.Fatalf("expected fetched quiz %s, got %v", id, fetched["id"])
	}
}

func TestWebSocketReportsErrors(t *testing.T) {
	server := httptest.NewServer(newTestMux())
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	messages := []map[string]any{
		{"type": "generate", "payload": map[string]any{"text": ""}},
		{"type": "fetch", "payload": map[string]any{"id": "missing"}},
		{"type": "fetch", "payload": "oops"},
		{"type": "answer", "payload": map[string]any{}},
	}
	for _, msg := range messages {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, payload := readNext(conn, t, "error")
		if payload["message"] == "" {
			t.Fatalf("expected error message for %v", msg)
		}
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

func TestOutboxPushStopsAfterWriterExits(t *testing.T) {
	out := newOutbox(0)
	close(out.done)

	result := make(chan bool, 1)
	go func() { result <- out.push(errorMessage("late")) }()

	select {
	case ok := <-result:
		if ok {
			t.Fatalf("expected push to fail once the writer stopped")
		}
	case <-time.After(time.Second):
		t.Fatalf("push blocked after the writer stopped")
	}
}

func TestOutboxPushQueuesWhileWriterRuns(t *testing.T) {
	out := newOutbox(1)
	if !out.push(errorMessage("queued")) {
		t.Fatalf("expected push to succeed")
	}
	if msg := <-out.ch; msg.Type != "error" {
		t.Fatalf("unexpected message %+v", msg)
	}
}
