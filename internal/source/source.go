// Package source loads task sets from project files. Two shapes are
// supported: the native format, a plain JSON array of tasks, and
// tracker exports, a looser document with a nested tasks array where
// field names and value types drift between tool versions.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mlindqvist/planline/internal/task"
)

// LoadFile reads tasks from path, sniffing the format: a top-level
// array is parsed strictly, anything with a "tasks" field is treated
// as a tracker export.
func LoadFile(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	return Parse(data)
}

// Parse decodes tasks from raw project-file bytes.
func Parse(data []byte) ([]task.Task, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var tasks []task.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("parse task list: %w", err)
		}
		return tasks, nil
	}
	return ParseExport(data)
}

// ParseExport decodes a tracker export. Exports are not schema-stable:
// task name may appear as "name" or "title", effort as a number or a
// string like "12h", and dependencies as "depends_on" or
// "dependencies". Missing effort defaults to one working day so an
// export never fails validation on a field the tracker omitted.
func ParseExport(data []byte) ([]task.Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse export: not valid JSON")
	}

	list := gjson.GetBytes(data, "tasks")
	if !list.IsArray() {
		return nil, fmt.Errorf("parse export: no tasks array found")
	}

	var tasks []task.Task
	var parseErr error
	list.ForEach(func(_, item gjson.Result) bool {
		t := task.Task{
			ID:         item.Get("id").String(),
			Name:       firstString(item, "name", "title"),
			Assignee:   item.Get("assignee").String(),
			Difficulty: int(item.Get("difficulty").Int()),
			Phase:      int(item.Get("phase").Int()),
			Section:    item.Get("section").String(),
		}

		effort, err := parseEffort(item)
		if err != nil {
			parseErr = fmt.Errorf("parse export: task %q: %w", t.ID, err)
			return false
		}
		t.EffortHours = effort

		deps := item.Get("depends_on")
		if !deps.Exists() {
			deps = item.Get("dependencies")
		}
		deps.ForEach(func(_, dep gjson.Result) bool {
			t.DependsOn = append(t.DependsOn, dep.String())
			return true
		})

		tasks = append(tasks, t)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return tasks, nil
}

func firstString(item gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := item.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// parseEffort reads the effort field, accepting a bare number of hours
// or a string with an optional "h" suffix.
func parseEffort(item gjson.Result) (float64, error) {
	v := item.Get("effort_hours")
	if !v.Exists() {
		v = item.Get("effort")
	}
	switch v.Type {
	case gjson.Null:
		return schedDefaultEffort, nil
	case gjson.Number:
		return v.Float(), nil
	case gjson.String:
		s := strings.TrimSuffix(strings.TrimSpace(v.String()), "h")
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
			return 0, fmt.Errorf("unparseable effort %q", v.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unparseable effort %q", v.Raw)
	}
}

// schedDefaultEffort is one working day of effort, used when an export
// omits the estimate entirely.
const schedDefaultEffort = 8.0
