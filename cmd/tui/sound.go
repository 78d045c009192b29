package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays a short tone per removal. A nil *Sound is silent.
type Sound struct{}

func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Sound{}, nil
}

// removalPitch rises with the size of the removed region, capped at two octaves.
func removalPitch(removed int) float64 {
	return 440 * math.Pow(2, math.Min(float64(removed-2)/6, 2))
}

func (s *Sound) PlayRemoval(removed int) {
	if s == nil {
		return
	}
	sine, err := generators.SineTone(sampleRate, removalPitch(removed))
	if err != nil {
		log.Warnf("Sound.PlayRemoval %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(60*time.Millisecond), sine))
}

func (s *Sound) Close() {
	if s != nil {
		speaker.Close()
	}
}
