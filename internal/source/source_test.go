package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_NativeArray(t *testing.T) {
	data := []byte(`[
		{"id": "a", "name": "Design schema", "assignee": "maria", "effort_hours": 12, "difficulty": 3, "phase": 1, "section": "backend"},
		{"id": "b", "name": "Write migrations", "effort_hours": 6, "phase": 1, "section": "backend", "depends_on": ["a"]}
	]`)

	tasks, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[0].EffortHours != 12 || tasks[0].Assignee != "maria" {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
	if len(tasks[1].DependsOn) != 1 || tasks[1].DependsOn[0] != "a" {
		t.Errorf("expected deps [a], got %v", tasks[1].DependsOn)
	}
}

func TestParse_ExportDocument(t *testing.T) {
	data := []byte(`{
		"project": "Sensor dashboard",
		"exported_at": "2026-02-11",
		"tasks": [
			{"id": "1.1", "title": "Wireframes", "effort": "12h", "phase": 1, "section": "design"},
			{"id": "1.2", "name": "Style guide", "effort": 4.5, "phase": 1, "section": "design", "dependencies": ["1.1"]},
			{"id": "2.1", "title": "API scaffold", "phase": 2, "section": "backend"}
		]
	}`)

	tasks, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	if tasks[0].Name != "Wireframes" {
		t.Errorf("title alias should map to Name, got %q", tasks[0].Name)
	}
	if tasks[0].EffortHours != 12 {
		t.Errorf(`effort "12h" should parse to 12, got %v`, tasks[0].EffortHours)
	}
	if tasks[1].EffortHours != 4.5 {
		t.Errorf("numeric effort should parse, got %v", tasks[1].EffortHours)
	}
	if len(tasks[1].DependsOn) != 1 || tasks[1].DependsOn[0] != "1.1" {
		t.Errorf("dependencies alias should map to DependsOn, got %v", tasks[1].DependsOn)
	}
	if tasks[2].EffortHours != 8 {
		t.Errorf("missing effort should default to one working day, got %v", tasks[2].EffortHours)
	}
}

func TestParse_ExportBadEffort(t *testing.T) {
	data := []byte(`{"tasks": [{"id": "a", "name": "A", "effort": "soon"}]}`)
	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected error for unparseable effort")
	}
}

func TestParse_NotJSON(t *testing.T) {
	_, err := Parse([]byte("phase,section,id\n1,a,x"))
	if err == nil {
		t.Fatal("expected error for non-JSON input")
	}
}

func TestParse_ExportWithoutTasks(t *testing.T) {
	_, err := Parse([]byte(`{"project": "empty"}`))
	if err == nil {
		t.Fatal("expected error when no tasks array present")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	content := `[{"id": "a", "name": "Only task", "effort_hours": 8, "phase": 1}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Only task" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
