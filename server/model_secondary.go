package server

import (
	"fmt"
	"net/http"
)

const HTTP_NOT_FOUND = http.StatusNotFound

const (
	URI_BOARD = "/board"
	URI_WATCH = "/watch"
)

const (
	layoutBuffer  = 16
	watcherBuffer = 10
)

func (ws WatcherState) Name() string {
	switch ws {
	case WS_NEW:
		return "NEW"
	case WS_WATCH:
		return "WATCH"
	case WS_ERR:
		return "ERR"
	default:
		return fmt.Sprintf("n/a:%d", ws)
	}
}
