package imgui

// FrameTimes is a fixed size ring of frame times in milliseconds, laid out the way
// imgui's line plots expect it.
type FrameTimes struct {
	Samples []float32
	Offset  int32
	cap     int
}

// Add records one frame. Once full, the oldest sample is overwritten and Offset
// points at the new oldest sample.
func (ft *FrameTimes) Add(dtSeconds float32) {

	ms := dtSeconds * 1000
	if len(ft.Samples) < ft.cap {
		ft.Samples = append(ft.Samples, ms)
		return
	}

	ft.Samples[ft.Offset] = ms

	ft.Offset++
	if int(ft.Offset) >= len(ft.Samples) {
		ft.Offset = 0
	}
}

func NewFrameTimes(capacity int) *FrameTimes {

	if capacity < 1 {
		capacity = 1
	}

	return &FrameTimes{
		Samples: make([]float32, 0, capacity),
		cap:     capacity,
	}
}
