package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jadeyalli/agendaInteligente/internal/config"
	"github.com/jadeyalli/agendaInteligente/internal/database"
	"github.com/jadeyalli/agendaInteligente/internal/engine"
	"github.com/jadeyalli/agendaInteligente/internal/models"
	"github.com/jadeyalli/agendaInteligente/internal/repository"
	"github.com/jadeyalli/agendaInteligente/internal/services"

	_ "time/tzdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to audit database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing audit database: %v", err)
		}
	}()

	if err := database.Migrate(db, cfg.Database.Driver); err != nil {
		log.Fatalf("failed to run audit migration: %v", err)
	}

	repos := repository.NewRepositories(db, cfg.Database.Driver)
	audit := services.NewAuditLogService(repos)

	req, raw, err := readRequest(os.Args[1:])
	if err != nil {
		log.Printf("malformed input: %v", err)
		os.Exit(1)
	}

	resp, err := solveWithRecover(req, cfg.Solver)
	if err != nil {
		log.Printf("malformed input: %v", err)
		os.Exit(1)
	}

	audit.LogSolve(req.User.ID, req.User.Timezone, resp, raw)

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(resp); err != nil {
		log.Fatalf("failed to write response: %v", err)
	}
}

// readRequest reads the solve request from a positional file argument, or
// from stdin when none is given. It also returns the raw decoded payload
// for the audit trail, which persists the request alongside its outcome.
func readRequest(args []string) (models.SolveRequest, models.JSONMap, error) {
	var r io.Reader
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return models.SolveRequest{}, nil, fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = bufio.NewReader(f)
	} else {
		r = bufio.NewReader(os.Stdin)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return models.SolveRequest{}, nil, fmt.Errorf("failed to read input: %w", err)
	}

	var req models.SolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return models.SolveRequest{}, nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}

	var raw models.JSONMap
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = nil
	}

	return req, raw, nil
}

// solveWithRecover wraps engine.Solve with a panic-recovery guard,
// converting any solver panic into a plain error instead of crashing the
// process.
func solveWithRecover(req models.SolveRequest, cfg config.SolverConfig) (resp *models.SolveResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic during solve: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("internal solver error: %v", r)
		}
	}()

	start := time.Now()
	budget := time.Duration(cfg.MaxSeconds*float64(time.Second)) + 5*time.Second
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	resp, err = engine.Solve(ctx, req, cfg)
	log.Printf("solve completed in %s", time.Since(start))
	return resp, err
}
