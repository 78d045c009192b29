package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fruitfall/conf"
	"github.com/zucenko/fruitfall/model"
	"github.com/zucenko/fruitfall/server"
)

// Server deals boards and taps them at random so watchers have something to
// look at.
type Server struct {
	Config    *conf.Config
	Inspector *server.Inspector
	Grid      *model.Grid
	rnd       *rand.Rand
	idleTaps  int
}

// re-deal after this many taps in a row that removed nothing
const maxIdleTaps = 200

func (s *Server) deal() error {
	g, err := s.Config.NewGrid()
	if err != nil {
		return err
	}
	s.Grid = g
	s.idleTaps = 0
	s.Inspector.Publish(g.Layout())
	log.Infof("Server.deal %dx%d", g.Cols, g.Rows)
	return nil
}

// step taps one random cell and publishes the result.
func (s *Server) step() error {
	if s.Grid.Count() == 0 || s.idleTaps >= maxIdleTaps {
		return s.deal()
	}
	res := s.Grid.Tap(s.rnd.Intn(s.Grid.Cols), s.rnd.Intn(s.Grid.Rows))
	if !res.Changed() {
		s.idleTaps++
		return nil
	}
	s.idleTaps = 0
	s.Inspector.Publish(s.Grid.Layout())
	return nil
}

func (s *Server) Loop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.step(); err != nil {
				log.Errorf("Server.Loop %v", err)
				return
			}
		}
	}
}

func main() {
	confPath := flag.String("conf", "", "HCL config file")
	every := flag.Duration("every", 500*time.Millisecond, "delay between taps")
	flag.Parse()

	c, err := conf.Load(*confPath)
	if err != nil {
		log.Fatalln(err)
	}
	if err := c.SetupLogging(os.Stderr); err != nil {
		log.Fatalln(err)
	}
	addr := c.InspectAddr
	if addr == "" {
		addr = ":" + os.Getenv("PORT")
		if addr == ":" {
			addr = ":8080"
			log.Printf("Defaulting to port %s", addr)
		}
	}

	s := Server{
		Config:    c,
		Inspector: server.NewInspector(),
		rnd:       c.Rand(),
	}
	ctx := context.Background()
	go s.Inspector.Loop(ctx)
	if err := s.deal(); err != nil {
		log.Fatalln(err)
	}
	go s.Loop(ctx, *every)
	log.Fatalln(s.Inspector.ListenAndServe(addr))
}
