package websocket

import (
	"log/slog"
	"net/http"
	"strconv"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/smartcart/internal/feed"
	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/progress"
)

// Source provides the live queries streamed to clients.
type Source interface {
	SubscribeLists() (*feed.Subscription[[]model.ListSummary], error)
	SubscribeItems(listID int64) (*feed.Subscription[[]model.Item], error)
	SubscribeCategories() (*feed.Subscription[[]model.Category], error)
}

// ItemsSnapshot is the payload of an item stream frame.
type ItemsSnapshot struct {
	Items    []model.Item   `json:"items"`
	Progress model.Progress `json:"progress"`
}

// HandleLists streams list summaries.
func HandleLists(hub *Hub, src Source, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := src.SubscribeLists()
		if err != nil {
			logger.Error("subscribe lists", "error", err)
			http.Error(w, "failed to subscribe", http.StatusInternalServerError)
			return
		}
		serve(w, r, hub, logger, sub, func(lists []model.ListSummary) Message {
			if lists == nil {
				lists = []model.ListSummary{}
			}
			return NewSnapshot("lists", 0, lists)
		})
	}
}

// HandleItems streams the items of the list named by the {list_id} path
// value, with the list's progress.
func HandleItems(hub *Hub, src Source, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, err := strconv.ParseInt(r.PathValue("list_id"), 10, 64)
		if err != nil || listID <= 0 {
			http.Error(w, "invalid list_id", http.StatusBadRequest)
			return
		}
		sub, err := src.SubscribeItems(listID)
		if err != nil {
			logger.Error("subscribe items", "list_id", listID, "error", err)
			http.Error(w, "failed to subscribe", http.StatusInternalServerError)
			return
		}
		serve(w, r, hub, logger, sub, func(items []model.Item) Message {
			if items == nil {
				items = []model.Item{}
			}
			return NewSnapshot("items", listID, ItemsSnapshot{Items: items, Progress: progress.Compute(items)})
		})
	}
}

// HandleCategories streams the category set.
func HandleCategories(hub *Hub, src Source, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := src.SubscribeCategories()
		if err != nil {
			logger.Error("subscribe categories", "error", err)
			http.Error(w, "failed to subscribe", http.StatusInternalServerError)
			return
		}
		serve(w, r, hub, logger, sub, func(categories []model.Category) Message {
			if categories == nil {
				categories = []model.Category{}
			}
			return NewSnapshot("categories", 0, categories)
		})
	}
}

// serve upgrades the connection and forwards every snapshot of sub until
// the client goes away. It owns sub and cancels it on return.
func serve[T any](w http.ResponseWriter, r *http.Request, hub *Hub, logger *slog.Logger, sub *feed.Subscription[T], frame func(T) Message) {
	defer sub.Cancel()

	conn, err := ws.Accept(w, r, &ws.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin (LAN clients)
	})
	if err != nil {
		logger.Warn("accept", "error", err)
		return
	}
	defer conn.CloseNow()

	client := NewClient(hub, conn)
	go func() {
		for v := range sub.C() {
			ok, err := client.Send(frame(v))
			if err != nil {
				logger.Error("encode snapshot", "error", err)
				continue
			}
			if !ok {
				return
			}
		}
	}()

	client.Run(r.Context())
	conn.Close(ws.StatusNormalClosure, "")
}
