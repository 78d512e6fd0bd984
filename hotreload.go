package vite

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Reload pushes full-page reload messages to connected browsers over a
// websocket while the dev server is running.
type Reload struct {
	logger   zerolog.Logger
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
}

func newReload(logger zerolog.Logger) *Reload {
	return &Reload{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades the connection and holds it open until the client goes
// away.
func (r *Reload) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		ws, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			r.logger.Err(err).Msg("Failed to upgrade websocket")
			return nil
		}
		defer ws.Close()

		r.mu.Lock()
		r.clients[ws] = struct{}{}
		r.mu.Unlock()

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		r.mu.Lock()
		delete(r.clients, ws)
		r.mu.Unlock()
		return nil
	}
}

// Broadcast sends a message to every connected client, dropping clients whose
// connection has gone bad.
func (r *Reload) Broadcast(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ws := range r.clients {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			r.logger.Err(err).Msg("Error sending reload message, removing client")
			ws.Close()
			delete(r.clients, ws)
		}
	}
}

// watch runs an fsnotify watcher over the entry-point directories and every
// configured refresh path, invoking onChange for each write until the context
// is cancelled.
func (p *Plugin) watch(ctx context.Context, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	roots := make([]string, 0, len(p.Config.Input)+len(p.Config.Refresh))
	for _, input := range p.Config.Input {
		roots = append(roots, filepath.Dir(input))
	}
	roots = append(roots, p.Config.Refresh...)

	for _, root := range roots {
		err := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				p.Logger.Err(err).Msgf("Error accessing path: %s", path)
				return nil
			}
			if fi.IsDir() {
				if err := watcher.Add(path); err != nil {
					p.Logger.Err(err).Msgf("Failed to watch directory: %s", path)
				}
			}
			return nil
		})
		if err != nil {
			p.Logger.Err(err).Msgf("Failed to watch %s", root)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.Logger.Err(err).Msg("Error watching files")
		}
	}
}
