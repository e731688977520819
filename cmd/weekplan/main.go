package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/alerts"
	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/planner"
	"github.com/sandeepkv93/weekplan/internal/storage"
	"github.com/sandeepkv93/weekplan/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "weekplan failed: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	store := storage.NewStore(repo)
	state := store.Load(context.Background())

	engine := alerts.NewEngine(cfg.AlertBuffer)
	engine.Start()
	defer engine.Stop()

	// Persistence is fire-and-forget: snapshots queue onto a single writer
	// goroutine so mutating operations never wait on the database.
	saves := make(chan storage.AppState, 16)
	defer close(saves)

	p := planner.New(planner.Config{
		Persist: func(snapshot storage.AppState) {
			select {
			case saves <- snapshot:
			default:
			}
		},
		Notify: func(tasks []model.Task, now time.Time) {
			_ = alerts.Reschedule(engine, tasks, now)
		},
		State: state,
	})

	program := tea.NewProgram(update.NewModel(p, engine, cfg, time.Now))

	go func() {
		for snapshot := range saves {
			saveErr := store.Save(context.Background(), snapshot)
			if saveErr != nil {
				fmt.Fprintf(os.Stderr, "weekplan: save failed: %v\n", saveErr)
			}
			program.Send(update.SaveDoneMsg{Err: saveErr})
		}
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "weekplan failed: %v\n", err)
		os.Exit(1)
	}
}
