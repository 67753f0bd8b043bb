package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []string
}

func (r *recorder) add(s string) {
	r.events = append(r.events, s)
}

type fakeGame struct {
	rec *recorder
}

func (g *fakeGame) Init()     { g.rec.add("init") }
func (g *fakeGame) Update()   { g.rec.add("update") }
func (g *fakeGame) Render()   { g.rec.add("render") }
func (g *fakeGame) FrameEnd() { g.rec.add("frameEnd") }
func (g *fakeGame) DeInit()   { g.rec.add("deinit") }

type fakeScheduler struct {
	rec    *recorder
	frames int
}

func (s *fakeScheduler) NextFrame() bool {

	if s.frames == 0 {
		return false
	}

	s.frames--
	s.rec.add("next")
	return true
}

func (s *fakeScheduler) Present() { s.rec.add("present") }

func TestRunOrder(t *testing.T) {

	rec := &recorder{}
	Run(&fakeGame{rec: rec}, &fakeScheduler{rec: rec, frames: 2})

	frame := []string{"next", "update", "render", "present", "frameEnd"}
	expected := []string{"init"}
	expected = append(expected, frame...)
	expected = append(expected, frame...)
	expected = append(expected, "deinit")

	assert.Equal(t, expected, rec.events)
}

func TestRunNoFrames(t *testing.T) {

	rec := &recorder{}
	Run(&fakeGame{rec: rec}, &fakeScheduler{rec: rec})

	assert.Equal(t, []string{"init", "deinit"}, rec.events)
}
