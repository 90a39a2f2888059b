package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/smartcart/internal/feed"
	"github.com/dukerupert/smartcart/internal/model"
)

// fakeSource serves item snapshots from memory.
type fakeSource struct {
	feed *feed.Feed

	mu    sync.Mutex
	items map[int64][]model.Item
}

func (s *fakeSource) SubscribeLists() (*feed.Subscription[[]model.ListSummary], error) {
	return feed.Subscribe(s.feed, func() ([]model.ListSummary, error) { return nil, nil }, feed.Topic{Entity: "lists"})
}

func (s *fakeSource) SubscribeItems(listID int64) (*feed.Subscription[[]model.Item], error) {
	return feed.Subscribe(s.feed, func() ([]model.Item, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return append([]model.Item(nil), s.items[listID]...), nil
	}, feed.Topic{Entity: "items", ID: listID})
}

func (s *fakeSource) SubscribeCategories() (*feed.Subscription[[]model.Category], error) {
	return feed.Subscribe(s.feed, func() ([]model.Category, error) { return nil, nil }, feed.Topic{Entity: "categories"})
}

func (s *fakeSource) add(item model.Item) {
	s.mu.Lock()
	s.items[item.ListID] = append(s.items[item.ListID], item)
	s.mu.Unlock()
	s.feed.Notify(feed.Topic{Entity: "items", ID: item.ListID})
}

type itemsFrame struct {
	Type   string        `json:"type"`
	Entity string        `json:"entity"`
	ID     int64         `json:"id"`
	Data   ItemsSnapshot `json:"data"`
}

func readFrame(t *testing.T, conn *ws.Conn) itemsFrame {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f itemsFrame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return f
}

func TestHandleItemsStreamsSnapshots(t *testing.T) {
	f := feed.New(slog.Default())
	f.Start(context.Background())
	t.Cleanup(f.Stop)

	src := &fakeSource{feed: f, items: map[int64][]model.Item{}}
	hub := NewHub(slog.Default())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/lists/{list_id}/items", HandleItems(hub, src, slog.Default()))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/lists/7/items"
	conn, _, err := ws.Dial(context.Background(), url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	first := readFrame(t, conn)
	if first.Type != TypeSnapshot || first.Entity != "items" || first.ID != 7 {
		t.Fatalf("first frame = %+v", first)
	}
	if len(first.Data.Items) != 0 {
		t.Errorf("initial items = %d, want 0", len(first.Data.Items))
	}

	src.add(model.Item{ID: 1, ListID: 7, Name: "Milk", Completed: true})
	src.add(model.Item{ID: 2, ListID: 8, Name: "Nails"})

	var got itemsFrame
	for len(got.Data.Items) != 1 {
		got = readFrame(t, conn)
	}
	if got.Data.Items[0].Name != "Milk" {
		t.Errorf("item = %q, want %q", got.Data.Items[0].Name, "Milk")
	}
	if !got.Data.Progress.DerivedCompleted || got.Data.Progress.TotalItems != 1 {
		t.Errorf("progress = %+v", got.Data.Progress)
	}

	conn.Close(ws.StatusNormalClosure, "")

	deadline := time.Now().Add(2 * time.Second)
	for f.SubscriberCount() != 0 || hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscribers = %d, clients = %d after close", f.SubscriberCount(), hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleItemsRejectsBadListID(t *testing.T) {
	f := feed.New(slog.Default())
	src := &fakeSource{feed: f, items: map[int64][]model.Item{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/lists/{list_id}/items", HandleItems(NewHub(slog.Default()), src, slog.Default()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/ws/lists/abc/items", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
