package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/calafel/hopper/pkg/api"
	"github.com/calafel/hopper/pkg/kinematic"
	"github.com/calafel/hopper/pkg/log"
	"github.com/calafel/hopper/pkg/repositories"
	"github.com/calafel/hopper/pkg/session"
	"github.com/calafel/hopper/pkg/state"
	"github.com/calafel/hopper/pkg/version"
	"github.com/calafel/hopper/pkg/workers"
	"github.com/google/uuid"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	backend := flag.String("backend", "file", "Save backend: file, sqlite, or postgres")
	saveDir := flag.String("save-dir", "saves", "Save directory for the file backend")
	sqlitePath := flag.String("sqlite-path", "hopper.db", "Database path for the sqlite backend")
	sqliteMigrations := flag.String("sqlite-migrations", "migrations/sqlite", "Migrations directory for the sqlite backend")
	debugPort := flag.Int("debug-port", 9090, "Debug API port")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting session demo version %s", version.Get())
	ctx := context.Background()

	var repository repositories.Repository
	switch *backend {
	case "file":
		repository, err = repositories.NewFileRepository(*saveDir)
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, *sqlitePath, *sqliteMigrations)
	case "postgres":
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			panic("DATABASE_URL environment variable must be set")
		}
		repository, err = repositories.NewPostgresRepository(ctx, connStr)
	default:
		panic(fmt.Sprintf("Unknown backend: %s", *backend))
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(ctx)

	repo := session.NewGameRepo()
	defer repo.Close()
	log.Info("Session %s started", repo.SessionID())

	stateManager := state.NewInMemoryStateManager()
	mirror := state.NewSessionMirror(repo, stateManager)
	defer mirror.Close()

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	saveWorker := workers.NewSaveWorker(workers.NewSaveWorkerOptions{
		Session:    repo,
		Repository: repository,
		QueueSize:  8,
	})
	defer saveWorker.Close()
	go saveWorker.Start(workerCtx)

	debugServer := api.NewDebugServer(api.NewDebugServerOptions{
		Port:         *debugPort,
		StateManager: stateManager,
		Session:      repo,
	})
	go debugServer.Start()
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(ctx, 5*time.Second)
		defer stopCancel()
		if err := debugServer.Stop(stopCtx); err != nil {
			log.Error("Failed to stop debug server: %v", err)
		}
	}()

	runSession(repo, saveWorker)
}

// runSession drives a short scripted run: the player jumps along,
// bounces off a jumpshroom, requests a save mid-run, and collects
// every coin, which ends the game in a win.
func runSession(repo session.GameRepo, saveWorker *workers.SaveWorker) {
	repo.Jumped().Subscribe(func(session.JumpEvent) {
		log.Debug("Jumped")
	})
	repo.CoinCollected().Subscribe(func(event session.CoinCollectedEvent) {
		log.Info("Collected coin %s (%d so far)", event.CoinID, event.NumCollected)
	})
	repo.SaveCompleted().Subscribe(func(session.SaveCompletedEvent) {
		log.Info("Save completed")
	})

	ended := false
	repo.GameEnded().Subscribe(func(event session.GameEndedEvent) {
		log.Info("Game ended: %s", event.Reason)
		ended = true
	})

	repo.Resume()
	repo.OnNumCoinsAtStart(3)

	coins := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	const dt = 1.0 / 60
	const runSpeed = 3.0

	pos := kinematic.Vector3{}
	verticalVelocity := 0.0
	basis := kinematic.IdentityBasis()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for tick := 0; tick < 600 && !ended; tick++ {
		<-ticker.C

		switch tick {
		case 30:
			repo.Jump()
			verticalVelocity = 4.5
		case 120:
			repo.StartCoinCollection(coins[0])
		case 150:
			repo.OnFinishCoinCollection(coins[0])
		case 180:
			repo.StartSaving()
		case 240:
			repo.OnJumpshroomUsed()
			verticalVelocity = 9
		case 300:
			// The last two pickups overlap; the win fires only when
			// the second one finishes.
			repo.StartCoinCollection(coins[1])
		case 310:
			repo.StartCoinCollection(coins[2])
		case 330:
			repo.OnFinishCoinCollection(coins[1])
		case 360:
			repo.OnFinishCoinCollection(coins[2])
		}

		pos.X += runSpeed * dt
		pos.Y += kinematic.Displacement(verticalVelocity, dt, kinematic.Gravity)
		verticalVelocity = kinematic.FinalVelocity(verticalVelocity, dt, kinematic.Gravity)
		if pos.Y < 0 {
			pos.Y = 0
			verticalVelocity = 0
		}
		repo.SetPlayerGlobalPosition(pos)

		basis = basis.RotatedY(0.01)
		repo.SetCameraBasis(basis)

		saveWorker.Flush()
	}

	// Give the pending save a moment to land before teardown.
	for i := 0; i < 60; i++ {
		<-ticker.C
		saveWorker.Flush()
	}
}
