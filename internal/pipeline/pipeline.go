package pipeline

import (
	"image"
	"io"
	"log"
)

// Pipeline runs the tasks and reports stage sizes to its logger.
type Pipeline struct {
	logger *log.Logger
}

// New creates a Pipeline. A nil logger discards stage logging.
func New(logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pipeline{logger: logger}
}

func (p *Pipeline) stage(name string, img image.Image) {
	b := img.Bounds()
	p.logger.Printf("%s: %dx%d", name, b.Dx(), b.Dy())
}
