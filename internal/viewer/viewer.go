// Package viewer exposes the projected schedule over a local HTTP
// endpoint for external rendering layers (browser Gantt components,
// export tooling). It holds one schedule graph at a time.
package viewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mlindqvist/planline/internal/gantt"
	"github.com/mlindqvist/planline/internal/schedule"
)

// --- Graph types (the schema rendering layers consume) ---

type GraphNode struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Assignee   string `json:"assignee,omitempty"`
	Start      string `json:"start"`
	End        string `json:"end"`
	WeekNumber int    `json:"week_number"`
	Status     string `json:"status"`
	IsCritical bool   `json:"is_critical"`
	Slack      int    `json:"slack"`
}

type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type GraphMetadata struct {
	GeneratedAt string `json:"generated_at"`
	Start       string `json:"start"`
	TotalTasks  int    `json:"total_tasks"`
	TotalDays   int    `json:"total_days"`
}

type Graph struct {
	Nodes        []GraphNode   `json:"nodes"`
	Edges        []GraphEdge   `json:"edges"`
	CriticalPath []string      `json:"critical_path,omitempty"`
	Metadata     GraphMetadata `json:"metadata"`
}

// BuildGraph converts a schedule and its projected rows into the
// normalised Graph. Edges are emitted only for dependency ids that
// resolve within the task set; dangling references stay off the wire.
func BuildGraph(res *schedule.Result, rows []gantt.Row) *Graph {
	known := make(map[string]bool, len(rows))
	for _, row := range rows {
		known[row.ID] = true
	}

	nodes := make([]GraphNode, 0, len(rows))
	var edges []GraphEdge
	for _, row := range rows {
		nodes = append(nodes, GraphNode{
			ID:         row.ID,
			Name:       row.Name,
			Assignee:   row.Assignee,
			Start:      row.Start.Format("2006-01-02"),
			End:        row.End.Format("2006-01-02"),
			WeekNumber: row.WeekNumber,
			Status:     string(row.Status),
			IsCritical: row.Critical,
			Slack:      row.Slack,
		})
		for _, dep := range row.DependsOn {
			if known[dep] {
				edges = append(edges, GraphEdge{From: dep, To: row.ID})
			}
		}
	}

	return &Graph{
		Nodes:        nodes,
		Edges:        edges,
		CriticalPath: res.CriticalPath,
		Metadata: GraphMetadata{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Start:       res.Start.Format("2006-01-02"),
			TotalTasks:  len(rows),
			TotalDays:   res.TotalDays,
		},
	}
}

// --- HTTP server ---

type server struct {
	mu    sync.RWMutex
	graph *Graph
	log   *zap.Logger
}

func (s *server) handlePostSchedule(w http.ResponseWriter, r *http.Request) {
	var g Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		s.log.Warn("rejected schedule payload", zap.Error(err))
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.graph = &g
	s.mu.Unlock()

	s.log.Info("schedule loaded",
		zap.Int("tasks", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)))

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&g)
}

func (s *server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	g := s.graph
	s.mu.RUnlock()

	if g == nil {
		http.Error(w, "no schedule loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

// Handler builds the viewer's HTTP mux. Split out so tests can drive
// it through httptest without binding a port.
func Handler(log *zap.Logger) http.Handler {
	srv := &server{log: log}
	mux := http.NewServeMux()

	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			srv.handlePostSchedule(w, r)
		case http.MethodGet:
			srv.handleGetSchedule(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return mux
}

// Start launches the viewer on the given port in the background and
// returns the base URL.
func Start(port int, log *zap.Logger) (string, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return "", fmt.Errorf("listen on port %d: %w", port, err)
	}

	go http.Serve(ln, Handler(log))

	addr := fmt.Sprintf("http://localhost:%d", port)
	log.Info("viewer listening", zap.String("addr", addr))
	return addr, nil
}

// PostSchedule sends a schedule graph to a running viewer.
func PostSchedule(addr string, g *Graph) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal schedule graph: %w", err)
	}

	resp, err := http.Post(addr+"/schedule", "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("POST /schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /schedule returned %d", resp.StatusCode)
	}
	return nil
}
