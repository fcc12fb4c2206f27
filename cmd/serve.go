package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/capacity-planner/capacity-planner/planner"
)

var addr string // HTTP listen address

// serveCmd exposes the pipeline as a thin HTTP JSON shell. No business
// logic lives here: handlers validate shape, call the planner, and map
// outcomes to status codes.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capacity planner over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		p, err := buildPlanner(context.Background())
		if err != nil {
			logrus.Fatalf("failed to build planner: %v", err)
		}

		server := &http.Server{
			Addr:              addr,
			Handler:           newMux(p),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logrus.Infof("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	},
}

func newMux(p *planner.Planner) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/v1/plan", handlePlan(p))
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlan accepts {target_qty, deadline_hrs, part_id} and responds with
// {recommendation, explanation}. A null recommendation with explanation is a
// 200: "no feasible plan" is an outcome, not a server error.
func handlePlan(p *planner.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}

		var req planner.PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		result, err := p.Plan(r.Context(), req)
		if errors.Is(err, planner.ErrInvalidRequest) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err != nil {
			logrus.Errorf("plan request failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("failed to encode response: %v", err)
	}
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}
