package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/grid"
)

func newServeCmd() *cobra.Command {
	var addr string
	var workers int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a step-by-step JSON view of a search on a random grid",
		Long: `Starts an HTTP server with two endpoints:

  GET /init?w=40&h=24&clusters=8&steps=200&density=0.25&diagonal=true
      generates a random grid and starts a new search on it
  GET /next
      expands one node and returns the open/closed sets as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			viz := newVizServer(workers, rand.New(rand.NewSource(time.Now().UnixNano())))
			defer viz.close()
			return serve(cmd.Context(), addr, viz.routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "worker goroutines relaxing neighbors")
	return cmd
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving search viewer", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type snapshot struct {
	Step    int      `json:"step"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Walls   [][2]int `json:"walls"`
	Open    [][2]int `json:"open,omitempty"`
	Closed  [][2]int `json:"closed,omitempty"`
	Current [2]int   `json:"current"`
	Start   [2]int   `json:"start"`
	Goal    [2]int   `json:"goal"`
	Done    bool     `json:"done"`
	Found   bool     `json:"found"`
	Cost    float64  `json:"cost,omitempty"`
	Path    [][2]int `json:"path,omitempty"`
}

// vizServer holds the one search being viewed.
type vizServer struct {
	mu       sync.Mutex
	workers  int
	rng      *rand.Rand
	scenario *grid.Scenario
	stepper  *astar.Stepper
}

func newVizServer(workers int, rng *rand.Rand) *vizServer {
	return &vizServer{workers: workers, rng: rng}
}

func (v *vizServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/init", v.handleInit)
	mux.HandleFunc("/next", v.handleNext)
	return mux
}

func (v *vizServer) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stepper != nil {
		v.stepper.Close()
		v.stepper = nil
	}
}

func (v *vizServer) handleInit(w http.ResponseWriter, r *http.Request) {
	params := generateParamsFromQuery(r)

	v.mu.Lock()
	defer v.mu.Unlock()

	scenario, err := grid.Generate(params, v.rng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	heuristic := astar.Manhattan
	if params.Diagonal {
		heuristic = astar.Octile
	}
	stepper, err := astar.NewStepper(context.Background(), scenario.Grid, scenario.Start, scenario.Goal, heuristic,
		astar.WithWorkers(v.workers), astar.WithLogger(logger))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// stop previous stepper if any
	if v.stepper != nil {
		v.stepper.Close()
	}
	v.scenario, v.stepper = scenario, stepper
	logger.Debug("New search",
		zap.Stringer("start", scenario.Start),
		zap.Stringer("goal", scenario.Goal),
		zap.Int("w", params.Width), zap.Int("h", params.Height))

	writeJSON(w, map[string]any{"ok": true, "w": params.Width, "h": params.Height})
}

func (v *vizServer) handleNext(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stepper == nil {
		http.Error(w, "engine not initialized", http.StatusBadRequest)
		return
	}
	st, err := v.stepper.Step()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	g := v.scenario.Grid
	s := snapshot{
		Step:    st.StepIndex,
		W:       g.Width(),
		H:       g.Height(),
		Walls:   wallList(g),
		Open:    setToList(st.Open),
		Closed:  setToList(st.Closed),
		Current: pair(st.Current),
		Start:   pair(v.scenario.Start),
		Goal:    pair(v.scenario.Goal),
		Done:    st.Done,
		Found:   st.Found,
		Cost:    st.TotalCost,
	}
	if st.Found {
		s.Path = make([][2]int, 0, len(st.Path))
		for _, p := range st.Path {
			s.Path = append(s.Path, pair(p))
		}
	}
	writeJSON(w, s)
}

// Query values above these limits are clamped.
const (
	maxViewerSide     = 1000
	maxViewerClusters = 1000
	maxViewerSteps    = 10000
)

func generateParamsFromQuery(r *http.Request) grid.GenerateParams {
	q := r.URL.Query()
	params := grid.DefaultGenerateParams
	if v, err := strconv.Atoi(q.Get("w")); err == nil && v > 4 {
		params.Width = min(v, maxViewerSide)
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil && v > 4 {
		params.Height = min(v, maxViewerSide)
	}
	if v, err := strconv.Atoi(q.Get("clusters")); err == nil && v > 0 {
		params.Clusters = min(v, maxViewerClusters)
	}
	if v, err := strconv.Atoi(q.Get("steps")); err == nil && v > 0 {
		params.Steps = min(v, maxViewerSteps)
	}
	if v, err := strconv.ParseFloat(q.Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		params.Density = v
	}
	if v, err := strconv.ParseBool(q.Get("diagonal")); err == nil {
		params.Diagonal = v
	}
	return params
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func pair(loc astar.Location) [2]int { return [2]int{loc.X, loc.Y} }

func setToList(m map[astar.Location]bool) [][2]int {
	res := make([][2]int, 0, len(m))
	for p, ok := range m {
		if ok {
			res = append(res, pair(p))
		}
	}
	return res
}

func wallList(g *grid.Grid) [][2]int {
	var walls [][2]int
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if loc := astar.NewLocation(x, y); !g.Passable(loc) {
				walls = append(walls, pair(loc))
			}
		}
	}
	return walls
}
