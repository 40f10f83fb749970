package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/recommend"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lead scoring API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(e),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := timeoutContext(5 * time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func newRouter(e *env) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads/{id}/score", e.handleScoreLead)
		r.Post("/leads/batch-score", e.handleBatchScore)
		r.Get("/leads/top", e.handleTopLeads)
		r.Get("/recommendations/similar/{id}", e.handleSimilar)
		r.Get("/recommendations/trending", e.handleTrending)
		r.Get("/recommendations/for-you", e.handleForYou)
	})
	return r
}

func (e *env) handleScoreLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := e.store.GetLead(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if lead == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
		return
	}

	result := e.calc.Score(*lead)
	persistErr := scoring.NewPersister(e.store, e.bus).Save(r.Context(), result)

	resp := map[string]any{
		"lead_id":        result.LeadID,
		"score":          result.Score,
		"features":       result.Features,
		"scored_at":      result.ScoredAt,
		"interpretation": scoring.Interpret(result.Score),
	}
	// Persistence failure does not discard the computed result.
	if persistErr != nil {
		zap.L().Error("score computed but not persisted",
			zap.String("lead_id", result.LeadID), zap.Error(persistErr))
		resp["persisted"] = false
	} else {
		resp["persisted"] = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *env) handleBatchScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	// An empty body means "score everything".
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var leads []model.Lead
	if len(req.IDs) > 0 {
		for _, id := range req.IDs {
			lead, err := e.store.GetLead(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			if lead != nil {
				leads = append(leads, *lead)
			}
		}
	} else {
		var err error
		leads, err = e.store.ListLeads(r.Context(), store.LeadFilter{Limit: cfg.Recommend.CandidateLimit})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	results := e.calc.ScoreBatch(leads)
	saved, err := scoring.NewPersister(e.store, e.bus).SaveAll(r.Context(), results)

	resp := map[string]any{"scored": len(results), "persisted": saved}
	if err != nil {
		resp["error"] = "some scores could not be persisted"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *env) handleTopLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := e.store.ListLeads(r.Context(), store.LeadFilter{
		OrderBy: store.OrderByScore,
		Limit:   queryInt(r, "limit", 10),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

func (e *env) handleSimilar(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	pool, err := e.store.ListLeads(r.Context(), store.LeadFilter{
		OrderBy: store.OrderByCreated,
		Limit:   cfg.Recommend.CandidateLimit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !containsLead(pool, targetID) {
		target, err := e.store.GetLead(r.Context(), targetID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if target != nil {
			pool = append(pool, *target)
		}
	}

	result := e.engine.Similar(targetID, pool, queryInt(r, "limit", 5))
	writeJSON(w, http.StatusOK, result)
}

func (e *env) handleTrending(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 7)

	leads, err := e.store.ListLeads(r.Context(), store.LeadFilter{
		Since: time.Now().UTC().AddDate(0, 0, -days),
		Limit: cfg.Recommend.CandidateLimit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	entries := recommend.Trending(leads, days, queryInt(r, "limit", 10))
	writeJSON(w, http.StatusOK, map[string]any{"trending": entries})
}

func (e *env) handleForYou(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 7)

	recent, err := e.store.ListLeads(r.Context(), store.LeadFilter{
		Since: time.Now().UTC().AddDate(0, 0, -days),
		Limit: cfg.Recommend.CandidateLimit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	trending := recommend.Trending(recent, days, cfg.Recommend.TopNiches)

	candidates, err := e.store.ListLeads(r.Context(), store.LeadFilter{
		OrderBy: store.OrderByScore,
		Limit:   cfg.Recommend.CandidateLimit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	picked := e.engine.Recommend(candidates, trending, queryInt(r, "limit", 10))
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": picked})
}

func timeoutContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, status, map[string]string{"error": "internal error"})
}

func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
