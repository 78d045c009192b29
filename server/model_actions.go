package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fruitfall/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func NewInspector() *Inspector {
	return &Inspector{
		Watchers: make([]*Watcher, 0),
		Layouts:  make(chan model.Layout, layoutBuffer),
		Requests: make(chan WatchRequest),
		Errors:   make(chan *Watcher, watcherBuffer),
		Upgrader: &websocket.Upgrader{},
	}
}

// Publish hands a layout to the loop. It never blocks the caller's frame.
func (s *Inspector) Publish(l model.Layout) {
	select {
	case s.Layouts <- l:
	default:
		log.Warnf("Inspector.Publish dropping layout run:%d, loop busy", l.Runs)
	}
}

// Latest returns the last published layout.
func (s *Inspector) Latest() (model.Layout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return model.Layout{}, false
	}
	return *s.latest, true
}

func (s *Inspector) HandleBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := s.Latest()
		if !ok {
			w.WriteHeader(HTTP_NOT_FOUND)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(l); err != nil {
			log.Warnf("HandleBoard encode err %v", err)
		}
	}
}

func (s *Inspector) HandleWatch() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("HandleWatch - connection received from %s", r.RemoteAddr)
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleWatch websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		watcher := &Watcher{
			State:          WS_NEW,
			Conn:           con,
			Done:           make(chan struct{}),
			MessagesToSend: make(chan model.Layout, watcherBuffer),
		}
		select {
		case s.Requests <- WatchRequest{Watcher: watcher}:
		case <-time.After(timeout):
			log.Warn("HandleWatch Requests TIMEOUTED")
			return
		}
		<-watcher.Done
		log.Debugf("HandleWatch - watcher %s gone", r.RemoteAddr)
	}
}

// Loop owns the watcher list until ctx is done.
func (s *Inspector) Loop(ctx context.Context) {
	log.Info("Inspector.Loop starting")
	for {
		select {
		case <-ctx.Done():
			for _, w := range append([]*Watcher(nil), s.Watchers...) {
				s.dropWatcher(w)
			}
			log.Info("Inspector.Loop stopped")
			return
		case req := <-s.Requests:
			s.addWatcher(req.Watcher)
		case l := <-s.Layouts:
			s.mu.Lock()
			s.latest = &l
			s.mu.Unlock()
			for _, w := range s.Watchers {
				w.send(l)
			}
		case w := <-s.Errors:
			s.dropWatcher(w)
		}
	}
}

func (s *Inspector) addWatcher(w *Watcher) {
	w.Conn.SetPingHandler(
		func(message string) error {
			err := w.Conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			w.DebugLastPing = time.Now()
			w.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	w.State = WS_WATCH
	s.Watchers = append(s.Watchers, w)
	go w.LoopChannelRead(s.Errors)
	go w.LoopChannelWrite(s.Errors)
	if l, ok := s.Latest(); ok {
		w.send(l)
	}
	log.Infof("Inspector watcher added, %d watching", len(s.Watchers))
}

// dropWatcher is a no-op for watchers already dropped, both pumps report.
func (s *Inspector) dropWatcher(w *Watcher) {
	for i, known := range s.Watchers {
		if known != w {
			continue
		}
		s.Watchers = append(s.Watchers[:i], s.Watchers[i+1:]...)
		w.State = WS_ERR
		close(w.MessagesToSend)
		close(w.Done)
		log.Infof("Inspector watcher dropped, %d watching", len(s.Watchers))
		return
	}
}

func (w *Watcher) send(l model.Layout) {
	select {
	case w.MessagesToSend <- l:
	default:
		log.Warnf("Watcher.send dropping layout run:%d, MessagesToSend FULL", l.Runs)
	}
}

// LoopChannelRead only drains the connection to notice when it closes.
func (w *Watcher) LoopChannelRead(errs chan<- *Watcher) {
	for {
		if _, _, err := w.Conn.NextReader(); err != nil {
			log.Debugf("Watcher.LoopChannelRead ended %v", err)
			w.report(errs)
			return
		}
	}
}

// this function only consumes. no worries about full buffer stuck
func (w *Watcher) LoopChannelWrite(errs chan<- *Watcher) {
	for mes := range w.MessagesToSend {
		writer, err := w.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			log.Warnf("Watcher.LoopChannelWrite cant get writer %v", err)
			w.report(errs)
			return
		}
		if err = json.NewEncoder(writer).Encode(mes); err != nil {
			log.Warnf("Watcher.LoopChannelWrite cant encode %v", err)
			w.report(errs)
			return
		}
		if err = writer.Close(); err != nil {
			log.Warnf("Watcher.LoopChannelWrite cant flush %v", err)
			w.report(errs)
			return
		}
		w.DebugOutMessages++
	}
	log.Debugf("Watcher.LoopChannelWrite ended after %d messages", w.DebugOutMessages)
}

// report tells the loop this watcher failed; a full channel means the loop
// already has reports queued or is gone.
func (w *Watcher) report(errs chan<- *Watcher) {
	select {
	case errs <- w:
	default:
		log.Warn("Watcher.report Errors FULL")
	}
}
