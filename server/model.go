package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/fruitfall/model"
)

// Inspector streams board layouts to read-only watchers. Watchers and their
// states are owned by Loop.
type Inspector struct {
	Watchers []*Watcher
	Layouts  chan model.Layout
	Requests chan WatchRequest
	Errors   chan *Watcher
	Upgrader *websocket.Upgrader

	mu     sync.RWMutex
	latest *model.Layout
}

type WatcherState int

const (
	WS_NEW WatcherState = iota + 1
	WS_WATCH
	WS_ERR
)

type Watcher struct {
	State WatcherState
	Conn  *websocket.Conn
	Done  chan struct{}

	MessagesToSend chan model.Layout

	DebugOutMessages int
	DebugLastPing    time.Time
	DebugPings       int
}

type WatchRequest struct {
	Watcher *Watcher
}
