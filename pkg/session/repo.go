// Package session holds the state of one game session as observable
// values and re-broadcasts discrete gameplay events to subscribers.
// It sits between the view/input layer, which feeds it every frame,
// and the systems that react to it (UI, audio, persistence).
//
// Everything here is single-threaded: all methods must be called from
// the game's logic loop, and all notifications are delivered
// synchronously on the caller's stack.
package session

import (
	"github.com/calafel/hopper/pkg/kinematic"
	"github.com/calafel/hopper/pkg/observable"
	"github.com/google/uuid"
)

// GameRepo is the shared state and event hub for a single game
// session.
type GameRepo interface {
	// SessionID identifies this session for persistence and
	// diagnostics.
	SessionID() uuid.UUID

	// IsMouseCaptured reports whether input capture is active.
	IsMouseCaptured() *observable.Value[bool]
	// PlayerGlobalPosition is the player's world-space position,
	// pushed by the view every frame.
	PlayerGlobalPosition() *observable.Value[kinematic.Vector3]
	// CameraBasis is the camera's orientation, pushed by the view
	// every frame.
	CameraBasis() *observable.Value[kinematic.Basis]
	// NumCoinsCollected is the running count of collected coins.
	NumCoinsCollected() *observable.Value[int]
	// NumCoinsAtStart is the total number of coins present when the
	// session was loaded.
	NumCoinsAtStart() *observable.Value[int]

	// GlobalCameraDirection is the camera's facing direction, derived
	// from the current CameraBasis on every call.
	GlobalCameraDirection() kinematic.Vector3

	SetPlayerGlobalPosition(pos kinematic.Vector3)
	SetCameraBasis(basis kinematic.Basis)

	// StartCoinCollection records a coin pickup whose animation has
	// begun and broadcasts CoinCollected.
	StartCoinCollection(coinID uuid.UUID)
	// OnFinishCoinCollection records a pickup animation completing.
	// When the last in-flight pickup finishes and the collected count
	// has reached the session total, the game ends with
	// EndReasonPlayerWon.
	OnFinishCoinCollection(coinID uuid.UUID)
	// OnNumCoinsAtStart sets the session total. Called once during
	// world setup.
	OnNumCoinsAtStart(n int)

	Jump()
	OnJumpshroomUsed()

	// StartSaving broadcasts SaveRequested. Completion is
	// asynchronous: whoever performs the save calls OnSaveCompleted
	// when it is done.
	StartSaving()
	// OnSaveCompleted broadcasts SaveCompleted.
	OnSaveCompleted()

	// OnGameEnded releases mouse capture and broadcasts GameEnded.
	OnGameEnded(reason EndReason)

	Pause()
	Resume()

	Jumped() *observable.Signal[JumpEvent]
	CoinCollected() *observable.Signal[CoinCollectedEvent]
	JumpshroomUsed() *observable.Signal[JumpshroomUsedEvent]
	GameEnded() *observable.Signal[GameEndedEvent]
	SaveRequested() *observable.Signal[SaveRequestedEvent]
	SaveCompleted() *observable.Signal[SaveCompletedEvent]

	// Close releases every observable and signal so that no further
	// notifications are delivered. Close is idempotent.
	Close()
}

type gameRepo struct {
	sessionID uuid.UUID

	isMouseCaptured      *observable.Value[bool]
	playerGlobalPosition *observable.Value[kinematic.Vector3]
	cameraBasis          *observable.Value[kinematic.Basis]
	numCoinsCollected    *observable.Value[int]
	numCoinsAtStart      *observable.Value[int]

	// coinsBeingCollected counts pickups whose animation has started
	// but not yet finished.
	coinsBeingCollected int

	jumped         *observable.Signal[JumpEvent]
	coinCollected  *observable.Signal[CoinCollectedEvent]
	jumpshroomUsed *observable.Signal[JumpshroomUsedEvent]
	gameEnded      *observable.Signal[GameEndedEvent]
	saveRequested  *observable.Signal[SaveRequestedEvent]
	saveCompleted  *observable.Signal[SaveCompletedEvent]

	closed bool
}

// NewGameRepo creates the state hub for a fresh session. All values
// start zeroed; the camera basis starts at identity.
func NewGameRepo() GameRepo {
	return &gameRepo{
		sessionID:            uuid.New(),
		isMouseCaptured:      observable.NewValue(false),
		playerGlobalPosition: observable.NewValue(kinematic.Vector3{}),
		cameraBasis:          observable.NewValue(kinematic.IdentityBasis()),
		numCoinsCollected:    observable.NewValue(0),
		numCoinsAtStart:      observable.NewValue(0),
		jumped:               observable.NewSignal[JumpEvent](),
		coinCollected:        observable.NewSignal[CoinCollectedEvent](),
		jumpshroomUsed:       observable.NewSignal[JumpshroomUsedEvent](),
		gameEnded:            observable.NewSignal[GameEndedEvent](),
		saveRequested:        observable.NewSignal[SaveRequestedEvent](),
		saveCompleted:        observable.NewSignal[SaveCompletedEvent](),
	}
}

func (r *gameRepo) SessionID() uuid.UUID {
	return r.sessionID
}

func (r *gameRepo) IsMouseCaptured() *observable.Value[bool] {
	return r.isMouseCaptured
}

func (r *gameRepo) PlayerGlobalPosition() *observable.Value[kinematic.Vector3] {
	return r.playerGlobalPosition
}

func (r *gameRepo) CameraBasis() *observable.Value[kinematic.Basis] {
	return r.cameraBasis
}

func (r *gameRepo) NumCoinsCollected() *observable.Value[int] {
	return r.numCoinsCollected
}

func (r *gameRepo) NumCoinsAtStart() *observable.Value[int] {
	return r.numCoinsAtStart
}

func (r *gameRepo) GlobalCameraDirection() kinematic.Vector3 {
	return r.cameraBasis.Get().Forward()
}

func (r *gameRepo) SetPlayerGlobalPosition(pos kinematic.Vector3) {
	r.playerGlobalPosition.Set(pos)
}

func (r *gameRepo) SetCameraBasis(basis kinematic.Basis) {
	r.cameraBasis.Set(basis)
}

func (r *gameRepo) StartCoinCollection(coinID uuid.UUID) {
	r.coinsBeingCollected++
	r.numCoinsCollected.Set(r.numCoinsCollected.Get() + 1)
	r.coinCollected.Emit(CoinCollectedEvent{
		CoinID:       coinID,
		NumCollected: r.numCoinsCollected.Get(),
	})
}

func (r *gameRepo) OnFinishCoinCollection(coinID uuid.UUID) {
	if r.coinsBeingCollected == 0 {
		// Unbalanced finish call; the counter never goes negative.
		return
	}
	r.coinsBeingCollected--
	if r.coinsBeingCollected > 0 {
		return
	}
	// The win is edge-triggered when the last in-flight pickup
	// finishes, not when the count first reaches the target, so the
	// game never ends mid-animation.
	if r.numCoinsCollected.Get() >= r.numCoinsAtStart.Get() {
		r.OnGameEnded(EndReasonPlayerWon)
	}
}

func (r *gameRepo) OnNumCoinsAtStart(n int) {
	r.numCoinsAtStart.Set(n)
}

func (r *gameRepo) Jump() {
	r.jumped.Emit(JumpEvent{})
}

func (r *gameRepo) OnJumpshroomUsed() {
	r.jumpshroomUsed.Emit(JumpshroomUsedEvent{})
}

func (r *gameRepo) StartSaving() {
	r.saveRequested.Emit(SaveRequestedEvent{})
}

func (r *gameRepo) OnSaveCompleted() {
	r.saveCompleted.Emit(SaveCompletedEvent{})
}

func (r *gameRepo) OnGameEnded(reason EndReason) {
	r.isMouseCaptured.Set(false)
	r.gameEnded.Emit(GameEndedEvent{Reason: reason})
}

func (r *gameRepo) Pause() {
	r.isMouseCaptured.Set(false)
}

func (r *gameRepo) Resume() {
	r.isMouseCaptured.Set(true)
}

// reset zeroes the coin bookkeeping for a session restart.
func (r *gameRepo) reset() {
	r.numCoinsCollected.Set(0)
	r.coinsBeingCollected = 0
}

func (r *gameRepo) Jumped() *observable.Signal[JumpEvent] {
	return r.jumped
}

func (r *gameRepo) CoinCollected() *observable.Signal[CoinCollectedEvent] {
	return r.coinCollected
}

func (r *gameRepo) JumpshroomUsed() *observable.Signal[JumpshroomUsedEvent] {
	return r.jumpshroomUsed
}

func (r *gameRepo) GameEnded() *observable.Signal[GameEndedEvent] {
	return r.gameEnded
}

func (r *gameRepo) SaveRequested() *observable.Signal[SaveRequestedEvent] {
	return r.saveRequested
}

func (r *gameRepo) SaveCompleted() *observable.Signal[SaveCompletedEvent] {
	return r.saveCompleted
}

func (r *gameRepo) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.isMouseCaptured.Complete()
	r.playerGlobalPosition.Complete()
	r.cameraBasis.Complete()
	r.numCoinsCollected.Complete()
	r.numCoinsAtStart.Complete()
	r.jumped.Complete()
	r.coinCollected.Complete()
	r.jumpshroomUsed.Complete()
	r.gameEnded.Complete()
	r.saveRequested.Complete()
	r.saveCompleted.Complete()
}
