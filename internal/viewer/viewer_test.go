package viewer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mlindqvist/planline/internal/gantt"
	"github.com/mlindqvist/planline/internal/schedule"
	"github.com/mlindqvist/planline/internal/task"
)

func buildGraph(t *testing.T) *Graph {
	t.Helper()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{ID: "a", Name: "A", EffortHours: 8, Phase: 1},
		{ID: "b", Name: "B", EffortHours: 8, Phase: 1, DependsOn: []string{"a", "ghost"}},
	}
	res, err := schedule.Project(tasks, start, schedule.Options{})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	p := gantt.NewProjector(start)
	p.Now = func() time.Time { return start }
	return BuildGraph(res, p.Project(res.Tasks))
}

func TestBuildGraph(t *testing.T) {
	g := buildGraph(t)

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 1 {
		t.Fatalf("dangling reference must stay off the wire, got %v", g.Edges)
	}
	if g.Edges[0].From != "a" || g.Edges[0].To != "b" {
		t.Errorf("expected edge a->b, got %+v", g.Edges[0])
	}
	if g.Metadata.TotalTasks != 2 || g.Metadata.TotalDays != 2 {
		t.Errorf("unexpected metadata: %+v", g.Metadata)
	}
}

func TestHandler_PostThenGet(t *testing.T) {
	h := Handler(zap.NewNop())
	srv := httptest.NewServer(h)
	defer srv.Close()

	g := buildGraph(t)
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(srv.URL+"/schedule", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/schedule")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got Graph
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("round-trip mismatch: %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
}

func TestHandler_GetBeforePost(t *testing.T) {
	srv := httptest.NewServer(Handler(zap.NewNop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/schedule")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 before a schedule is loaded, got %d", resp.StatusCode)
	}
}

func TestHandler_BadPayload(t *testing.T) {
	srv := httptest.NewServer(Handler(zap.NewNop()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/schedule", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
