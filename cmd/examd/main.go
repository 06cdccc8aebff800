package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/studykit/mockexam/internal/api/http"
	"github.com/studykit/mockexam/internal/bank"
	"github.com/studykit/mockexam/internal/config"
	"github.com/studykit/mockexam/internal/db"
	"github.com/studykit/mockexam/internal/history"
	"github.com/studykit/mockexam/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// --- History backends, probed in preference order ---
	var backends []history.Backend
	if dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN); err != nil {
		log.Printf("db unavailable, continuing without it: %v", err)
	} else {
		backends = append(backends, history.NewSQLStore(dbh))
	}
	if fs, err := history.NewFileStore(cfg.DataDir); err != nil {
		log.Printf("file store unavailable, continuing without it: %v", err)
	} else {
		backends = append(backends, fs)
	}
	backends = append(backends, history.NewMemoryStore())
	gw := history.NewGateway(backends...)

	// --- Question bank ---
	questions, err := loadBank(cfg.BankPath)
	if err != nil {
		log.Fatalf("load question bank: %v", err)
	}

	// --- Session ---
	sess := session.New(questions, gw, session.Options{
		FullCount:      cfg.FullQuestionCount,
		ModuleCount:    cfg.ModuleQuestionCount,
		FullDuration:   cfg.FullDuration,
		ModuleDuration: cfg.ModuleDuration,
	})
	defer sess.Close()
	go sess.LoadHistory(context.Background())

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(ar chi.Router) {
		api.Mount(ar, sess)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	if cfg.WebDir != "" {
		if _, err := os.Stat(cfg.WebDir); err == nil {
			r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
		} else {
			log.Printf("web dir %s not found, serving API only", cfg.WebDir)
		}
	}

	log.Printf("listening on %s (db=%s, bank=%d questions)", cfg.HTTPAddr, cfg.DBDriver, len(questions))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func loadBank(path string) ([]bank.Question, error) {
	if path != "" {
		return bank.LoadFile(path)
	}
	return bank.Embedded()
}
