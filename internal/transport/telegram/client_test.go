// File path: internal/transport/telegram/client_test.go
package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dca-labs/reportbot/internal/transport"
)

type fakeAPI struct {
	mu       sync.Mutex
	messages []string
	docNames []string
	updates  []map[string]any
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		f.mu.Lock()
		f.messages = append(f.messages, r.PostFormValue("text"))
		f.mu.Unlock()
		writeResult(w, map[string]any{"message_id": 1})
	})
	mux.HandleFunc("/bottest-token/sendDocument", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("document")
		if err != nil {
			t.Errorf("missing document part: %v", err)
		} else {
			file.Close()
			f.mu.Lock()
			f.docNames = append(f.docNames, header.Filename)
			f.mu.Unlock()
		}
		writeResult(w, map[string]any{"message_id": 2})
	})
	mux.HandleFunc("/bottest-token/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		updates := f.updates
		f.updates = nil
		f.mu.Unlock()
		if updates == nil {
			updates = []map[string]any{}
		}
		writeResult(w, updates)
	})
	return mux
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)
	client, err := NewClient("test-token", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.pollTimeout = time.Millisecond
	return client
}

func TestSendMessage(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	if err := client.SendMessage(context.Background(), 7, "hello"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if len(api.messages) != 1 || api.messages[0] != "hello" {
		t.Fatalf("unexpected messages: %v", api.messages)
	}
}

func TestSendDocument(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	path := filepath.Join(t.TempDir(), "report.md")
	if err := os.WriteFile(path, []byte("# report"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := client.SendDocument(context.Background(), 7, path); err != nil {
		t.Fatalf("send document: %v", err)
	}
	if len(api.docNames) != 1 || api.docNames[0] != "report.md" {
		t.Fatalf("unexpected uploads: %v", api.docNames)
	}
}

type captureHandler struct {
	mu      sync.Mutex
	updates []transport.Update
	done    chan struct{}
}

func (c *captureHandler) HandleUpdate(ctx context.Context, upd transport.Update) {
	c.mu.Lock()
	c.updates = append(c.updates, upd)
	c.mu.Unlock()
	select {
	case c.done <- struct{}{}:
	default:
	}
}

func TestPollDispatchesUpdates(t *testing.T) {
	api := &fakeAPI{updates: []map[string]any{
		{
			"update_id": 10,
			"message":   map[string]any{"chat": map[string]any{"id": 7}, "text": "/start"},
		},
	}}
	client := newTestClient(t, api)

	handler := &captureHandler{done: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Poll(ctx, handler)

	select {
	case <-handler.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("update never dispatched")
	}
	cancel()

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.updates) == 0 {
		t.Fatalf("no updates captured")
	}
	upd := handler.updates[0]
	if upd.ChatID != 7 || upd.Command != "start" {
		t.Fatalf("unexpected update: %+v", upd)
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
