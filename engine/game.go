package engine

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Scheduler hands out frames. The window is the scheduler in a real run.
type Scheduler interface {
	// NextFrame blocks until a new frame may start and returns false once the game should stop
	NextFrame() bool

	// Present shows what was rendered this frame
	Present()
}

// Run drives the game until the scheduler stops handing out frames. Each frame runs
// Update, Render, Present and FrameEnd in that order.
func Run(g Game, sched Scheduler) {

	g.Init()

	for sched.NextFrame() {

		g.Update()
		g.Render()

		sched.Present()

		g.FrameEnd()
	}

	g.DeInit()
}
