package workers

import (
	"context"
	"time"

	"github.com/calafel/hopper/pkg/log"
	"github.com/calafel/hopper/pkg/queue"
	"github.com/calafel/hopper/pkg/repositories"
	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/calafel/hopper/pkg/session"
	"github.com/google/uuid"
)

const completionBufferSize = 16

// SaveWorker persists session snapshots in the background. It
// subscribes to the session's SaveRequested signal, captures a
// snapshot of the observable state at the moment of the request, and
// hands it to a goroutine that writes it through the repository.
//
// Completion notifications cross back onto the game's logic thread:
// the logic loop must call Flush each tick, which delivers
// OnSaveCompleted for every save that finished since the last call.
type SaveWorker struct {
	session     session.GameRepo
	repository  repositories.Repository
	requests    queue.Queue[*models.Snapshot]
	completions chan struct{}
	unsubscribe func()
}

type NewSaveWorkerOptions struct {
	Session    session.GameRepo
	Repository repositories.Repository
	QueueSize  int
}

// NewSaveWorker creates a new SaveWorker and subscribes it to the
// session. Call Start on a goroutine to begin processing and Close to
// detach from the session.
func NewSaveWorker(opts NewSaveWorkerOptions) *SaveWorker {
	w := &SaveWorker{
		session:     opts.Session,
		repository:  opts.Repository,
		requests:    queue.NewInMemoryQueue[*models.Snapshot](opts.QueueSize),
		completions: make(chan struct{}, completionBufferSize),
	}
	w.unsubscribe = opts.Session.SaveRequested().Subscribe(func(session.SaveRequestedEvent) {
		w.enqueueSnapshot()
	})
	return w
}

// enqueueSnapshot runs synchronously inside the SaveRequested
// broadcast, so it reads the observables on the logic thread.
func (w *SaveWorker) enqueueSnapshot() {
	pos := w.session.PlayerGlobalPosition().Get()
	snapshot := &models.Snapshot{
		ID:             uuid.New(),
		SessionID:      w.session.SessionID(),
		CreatedAt:      time.Now().UnixMilli(),
		X:              pos.X,
		Y:              pos.Y,
		Z:              pos.Z,
		CoinsCollected: w.session.NumCoinsCollected().Get(),
		CoinsAtStart:   w.session.NumCoinsAtStart().Get(),
	}
	if err := w.requests.Enqueue(snapshot); err != nil {
		log.Warn("Failed to enqueue save request: %v", err)
	}
}

// Start processes save requests until ctx is done.
func (w *SaveWorker) Start(ctx context.Context) {
	for {
		snapshot, err := w.requests.Dequeue(ctx)
		if err != nil {
			return
		}
		if err := w.repository.SaveSnapshot(ctx, snapshot); err != nil {
			log.Error("Failed to save snapshot: %v", err)
			continue
		}
		log.Debug("Saved snapshot %s for session %s", snapshot.ID, snapshot.SessionID)
		select {
		case w.completions <- struct{}{}:
		default:
			log.Warn("Completion buffer full, dropping save completion")
		}
	}
}

// Flush delivers pending save completions to the session. It must be
// called from the game's logic thread.
func (w *SaveWorker) Flush() {
	for {
		select {
		case <-w.completions:
			w.session.OnSaveCompleted()
		default:
			return
		}
	}
}

// Close detaches the worker from the session's save requests.
func (w *SaveWorker) Close() {
	w.unsubscribe()
}
