package api

import (
	"encoding/json"
	"sync"

	"github.com/calafel/hopper/pkg/log"
	"github.com/calafel/hopper/pkg/session"
)

// EventFrame is the JSON shape streamed to websocket clients.
type EventFrame struct {
	Type         string `json:"type"`
	CoinID       string `json:"coin_id,omitempty"`
	NumCollected int    `json:"num_collected,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

const clientBufferSize = 64

// eventFanout bridges the session's synchronous broadcasts to any
// number of websocket clients. Session callbacks run on the logic
// thread and push marshaled frames into per-client buffered channels;
// slow clients drop frames rather than stall the game.
type eventFanout struct {
	lock         sync.Mutex
	clients      map[chan []byte]struct{}
	unsubscribes []func()
}

func newEventFanout(repo session.GameRepo) *eventFanout {
	f := &eventFanout{
		clients: make(map[chan []byte]struct{}),
	}
	f.unsubscribes = append(f.unsubscribes,
		repo.Jumped().Subscribe(func(session.JumpEvent) {
			f.broadcast(EventFrame{Type: "jump"})
		}),
		repo.CoinCollected().Subscribe(func(event session.CoinCollectedEvent) {
			f.broadcast(EventFrame{
				Type:         "coin_collected",
				CoinID:       event.CoinID.String(),
				NumCollected: event.NumCollected,
			})
		}),
		repo.JumpshroomUsed().Subscribe(func(session.JumpshroomUsedEvent) {
			f.broadcast(EventFrame{Type: "jumpshroom_used"})
		}),
		repo.GameEnded().Subscribe(func(event session.GameEndedEvent) {
			f.broadcast(EventFrame{
				Type:   "game_ended",
				Reason: event.Reason.String(),
			})
		}),
		repo.SaveRequested().Subscribe(func(session.SaveRequestedEvent) {
			f.broadcast(EventFrame{Type: "save_requested"})
		}),
		repo.SaveCompleted().Subscribe(func(session.SaveCompletedEvent) {
			f.broadcast(EventFrame{Type: "save_completed"})
		}),
	)
	return f
}

func (f *eventFanout) broadcast(frame EventFrame) {
	b, err := json.Marshal(frame)
	if err != nil {
		log.Error("Failed to marshal event frame: %v", err)
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	for ch := range f.clients {
		select {
		case ch <- b:
		default:
			log.Warn("Event stream client is slow, dropping frame")
		}
	}
}

func (f *eventFanout) addClient() chan []byte {
	ch := make(chan []byte, clientBufferSize)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.clients[ch] = struct{}{}
	return ch
}

func (f *eventFanout) removeClient(ch chan []byte) {
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.clients, ch)
}

func (f *eventFanout) close() {
	for _, unsubscribe := range f.unsubscribes {
		unsubscribe()
	}
	f.unsubscribes = nil

	f.lock.Lock()
	defer f.lock.Unlock()
	f.clients = make(map[chan []byte]struct{})
}
