package input

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/term-snake/core"
)

const eventBufferSize = 256

// TcellSource turns tcell key events into Keys
// A single poller goroutine owns PollEvent; the game loop only reads the buffer
type TcellSource struct {
	queue
	screen tcell.Screen
	table  *KeyTable
}

// NewTcellSource starts polling an initialized screen
// Polling stops when the screen is finalized
func NewTcellSource(screen tcell.Screen, table *KeyTable) *TcellSource {
	if table == nil {
		table = DefaultKeyTable()
	}
	s := &TcellSource{
		queue:  newQueue(eventBufferSize),
		screen: screen,
		table:  table,
	}
	core.Go(s.poll)
	return s
}

func (s *TcellSource) poll() {
	defer close(s.closed)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}

		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			// Resize and mouse events don't steer the snake
			continue
		}

		k := s.table.Resolve(kev)
		if !s.offer(k) {
			log.Printf("[INPUT] [WARN] key buffer full, dropped %s", k.Name)
		}
	}
}
