package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fruitfall/conf"
	"github.com/zucenko/fruitfall/server"
)

func main() {
	confPath := flag.String("conf", "", "HCL config file")
	board := flag.String("board", "", "text board to start from, overrides the config")
	logPath := flag.String("log", "fruitfall-tui.log", "log file, the terminal belongs to the game")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	c, err := conf.Load(*confPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *board != "" {
		c.Board = *board
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	if err := c.SetupLogging(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	var inspector *server.Inspector
	if c.InspectAddr != "" {
		inspector = server.NewInspector()
		go inspector.Loop(context.Background())
		go func() {
			log.Errorf("inspector stopped: %v", inspector.ListenAndServe(c.InspectAddr))
		}()
	}

	var sound *Sound
	if !*mute {
		if sound, err = NewSound(); err != nil {
			// non-fatal, the game runs without sound
			log.Warnf("Audio initialization failed: %v", err)
		}
		defer sound.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalln(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalln(err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	game, err := NewGame(screen, c, inspector, sound)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to deal: %v\n", err)
		os.Exit(1)
	}
	game.run()
}
