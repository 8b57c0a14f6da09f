package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mlindqvist/planline/internal/assist"
	"github.com/mlindqvist/planline/internal/cache"
	"github.com/mlindqvist/planline/internal/config"
	"github.com/mlindqvist/planline/internal/gantt"
	"github.com/mlindqvist/planline/internal/graph"
	"github.com/mlindqvist/planline/internal/render"
	"github.com/mlindqvist/planline/internal/schedule"
	"github.com/mlindqvist/planline/internal/source"
	"github.com/mlindqvist/planline/internal/task"
	"github.com/mlindqvist/planline/internal/ui"
	"github.com/mlindqvist/planline/internal/viewer"
)

var (
	flagConfig      string
	flagSource      string
	flagStart       string
	flagHoursPerDay float64
	flagManual      bool
	flagNoCritical  bool
	flagJSON        bool
	flagNoCache     bool
	flagFormat      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planline",
		Short: "Turn a task dependency graph into a dated project timeline",
		Long: `Planline reads a project task file, computes a critical-path-annotated
schedule (or a simple sequential one in manual mode), and renders it as
a table, a Gantt chart, DOT, or JSON for external viewers.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !flagJSON {
				ui.PrintLogo()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default planline.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Project task file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Project start date, YYYY-MM-DD (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagHoursPerDay, "hours-per-day", 0, "Effort hours per scheduled day (default 8)")
	rootCmd.PersistentFlags().BoolVar(&flagManual, "manual", false, "Sequential phase-order scheduling instead of dependency-driven")
	rootCmd.PersistentFlags().BoolVar(&flagNoCritical, "no-critical-path", false, "Hide critical path highlighting (display only)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(ganttCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(inferDepsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type buildOutput struct {
	tasks  []task.Task
	result *schedule.Result
	rows   []gantt.Row
	cfg    *config.Config
	cached bool
}

// buildSchedule is shared by the schedule, gantt, viz and view
// commands: load config and tasks, compute or reuse the schedule,
// project display rows.
func buildSchedule() (*buildOutput, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSource != "" {
		cfg.Source = flagSource
	}
	if flagStart != "" {
		cfg.StartDate = flagStart
	}
	if flagHoursPerDay > 0 {
		cfg.HoursPerDay = flagHoursPerDay
	}
	if cfg.Source == "" {
		return nil, fmt.Errorf("no task source: pass --source or set source in planline.yaml")
	}

	tasks, err := source.LoadFile(cfg.Source)
	if err != nil {
		return nil, err
	}

	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}

	auto := cfg.Auto() && !flagManual
	mode := "auto"
	if !auto {
		mode = "manual"
	}
	opts := schedule.Options{HoursPerDay: cfg.HoursPerDay}

	store := cache.NewStore("")
	key := cache.Key(tasks, start, mode, opts.HoursPerDay)

	out := &buildOutput{tasks: tasks, cfg: cfg}
	if !flagNoCache {
		if entry, err := store.Load(key); err == nil && entry != nil {
			out.result = entry.Result
			out.cached = true
		}
	}

	if out.result == nil {
		if auto {
			out.result, err = schedule.Project(tasks, start, opts)
		} else {
			out.result, err = schedule.ManualProject(tasks, start, opts)
		}
		if err != nil {
			return nil, err
		}
		if saveErr := store.Save(&cache.Entry{
			Key:        key,
			Mode:       mode,
			ComputedAt: time.Now(),
			Result:     out.result,
		}); saveErr != nil {
			fmt.Fprintf(os.Stderr, "%s cache write failed: %v\n", ui.Yellow("⚠"), saveErr)
		}
	}

	epoch, err := cfg.WeekEpoch()
	if err != nil {
		return nil, err
	}
	out.rows = gantt.NewProjector(epoch).Project(out.result.Tasks)

	return out, nil
}

func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(os.Stdout, cfg.CriticalPathVisible() && !flagNoCritical)
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute and print the project schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := buildSchedule()
			if err != nil {
				return err
			}

			if flagJSON {
				return outputJSON(viewer.BuildGraph(out.result, out.rows))
			}

			if out.cached {
				fmt.Fprintf(os.Stderr, "%s\n", ui.Dim("(reusing cached schedule; pass --no-cache to recompute)"))
			}
			newRenderer(out.cfg).PrintSchedule(out.result, out.rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Ignore the schedule cache")

	return cmd
}

func ganttCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Print an ASCII Gantt chart of the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := buildSchedule()
			if err != nil {
				return err
			}
			r := newRenderer(out.cfg)
			r.PrintGantt(out.rows)
			r.PrintWarnings(out.result.Warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Ignore the schedule cache")

	return cmd
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the dependency graph (ascii or dot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := buildSchedule()
			if err != nil {
				return err
			}

			if flagFormat == "dot" {
				newRenderer(out.cfg).WriteDOT(os.Stdout, out.result)
				return nil
			}

			printASCIIDAG(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Ignore the schedule cache")

	return cmd
}

func printASCIIDAG(out *buildOutput) {
	fmt.Printf("🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Println(ui.Cyan("═══════════════════════"))
	fmt.Println()

	known := make(map[string]bool, len(out.rows))
	for _, row := range out.rows {
		known[row.ID] = true
	}

	lastPhase := -1
	for _, row := range out.rows {
		if row.Phase != lastPhase {
			fmt.Printf("%s Phase %d %s\n", ui.Cyan("──"), row.Phase, ui.Cyan("──────────────────────────────"))
			lastPhase = row.Phase
		}
		crit := " "
		if out.cfg.CriticalPathVisible() && !flagNoCritical && row.Critical {
			crit = ui.BoldYellow("⚡")
		}
		fmt.Printf("  %s [%s] %s\n", crit, ui.BoldMagenta(row.ID), row.Name)
		for _, dep := range row.DependsOn {
			marker := ui.Dim("└──←")
			if !known[dep] {
				marker = ui.Yellow("└──← (unknown)")
			}
			fmt.Printf("      %s %s\n", marker, ui.Magenta(dep))
		}
	}
	fmt.Println()
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the task file for cycles, bad effort and dangling dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagSource != "" {
				cfg.Source = flagSource
			}
			if cfg.Source == "" {
				return fmt.Errorf("no task source: pass --source or set source in planline.yaml")
			}

			tasks, err := source.LoadFile(cfg.Source)
			if err != nil {
				return err
			}

			g, err := graph.Build(tasks)
			if err != nil {
				var cycleErr *graph.CycleError
				if errors.As(err, &cycleErr) {
					fmt.Printf("%s %v\n", ui.BoldRed("✗"), cycleErr)
					return fmt.Errorf("task set is not schedulable")
				}
				return err
			}

			if flagJSON {
				return outputJSON(map[string]interface{}{
					"tasks":    g.TaskCount(),
					"roots":    g.Roots,
					"leaves":   g.Leaves,
					"warnings": g.Warnings,
				})
			}

			fmt.Printf("%s %s tasks, %d roots, %d leaves, no cycles\n",
				ui.BoldGreen("✓"), ui.Bold(g.TaskCount()), len(g.Roots), len(g.Leaves))
			for _, warn := range g.Warnings {
				fmt.Printf("%s %s\n", ui.Yellow("⚠"), warn)
			}
			return nil
		},
	}

	return cmd
}

func viewCmd() *cobra.Command {
	var flagPort int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Serve the schedule over HTTP for external viewers",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := buildSchedule()
			if err != nil {
				return err
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			addr, err := viewer.Start(flagPort, logger)
			if err != nil {
				return err
			}

			if err := viewer.PostSchedule(addr, viewer.BuildGraph(out.result, out.rows)); err != nil {
				return err
			}
			fmt.Printf("🌐 Schedule available at %s/schedule — Ctrl-C to stop\n", ui.Bold(addr))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			return nil
		},
	}

	cmd.Flags().IntVar(&flagPort, "port", 7171, "Viewer port")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Ignore the schedule cache")

	return cmd
}

func inferDepsCmd() *cobra.Command {
	var (
		flagApply    bool
		flagModel    string
		flagFromFile string
	)

	cmd := &cobra.Command{
		Use:   "infer-deps",
		Short: "Use Claude to suggest dependency edges from task names",
		Long: `Sends task names, phases and sections to Claude and infers dependency
edges. By default runs in dry-run mode — use --apply to write the
accepted edges back to the task file (native JSON format only).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagSource != "" {
				cfg.Source = flagSource
			}
			if cfg.Source == "" {
				return fmt.Errorf("no task source: pass --source or set source in planline.yaml")
			}

			tasks, err := source.LoadFile(cfg.Source)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				return fmt.Errorf("no tasks found in %s", cfg.Source)
			}

			summaries := make([]assist.TaskSummary, len(tasks))
			taskIDs := make(map[string]bool, len(tasks))
			for i, t := range tasks {
				summaries[i] = assist.TaskSummary{
					ID:      t.ID,
					Name:    t.Name,
					Phase:   t.Phase,
					Section: t.Section,
				}
				taskIDs[t.ID] = true
			}

			var result *assist.InferDepsResult
			if flagFromFile != "" {
				data, err := os.ReadFile(flagFromFile)
				if err != nil {
					return fmt.Errorf("read from-file: %w", err)
				}
				result = &assist.InferDepsResult{}
				if err := json.Unmarshal(data, result); err != nil {
					return fmt.Errorf("parse from-file: %w", err)
				}
				fmt.Printf("📂 Loaded %s edges from %s\n", ui.Bold(len(result.Edges)), ui.Dim(flagFromFile))
			} else {
				fmt.Printf("🔍 Sending %s tasks to Claude for dependency inference...\n", ui.Bold(len(summaries)))

				client, err := assist.NewClient("", flagModel)
				if err != nil {
					return err
				}

				result, err = client.InferDeps(context.Background(), summaries)
				if err != nil {
					return fmt.Errorf("infer deps: %w", err)
				}
			}

			// Validate edges: drop unknown ids and self-deps.
			var valid []assist.DepEdge
			for _, e := range result.Edges {
				if !taskIDs[e.DependentID] {
					fmt.Printf("  %s unknown dependent_id %s\n", ui.Yellow("⏭️  SKIP:"), e.DependentID)
					continue
				}
				if !taskIDs[e.PrerequisiteID] {
					fmt.Printf("  %s unknown prerequisite_id %s\n", ui.Yellow("⏭️  SKIP:"), e.PrerequisiteID)
					continue
				}
				if e.DependentID == e.PrerequisiteID {
					fmt.Printf("  %s self-dep %s\n", ui.Yellow("⏭️  SKIP:"), e.DependentID)
					continue
				}
				valid = append(valid, e)
			}

			// Greedily accept edges, skipping any that would create a cycle
			// against the existing dependencies.
			accepted := acceptAcyclic(tasks, valid)
			for _, e := range valid {
				if !containsEdge(accepted, e) {
					fmt.Printf("  %s would create cycle: %s -> %s\n",
						ui.Yellow("⏭️  SKIP:"), e.PrerequisiteID, e.DependentID)
				}
			}

			if flagJSON {
				return outputJSON(struct {
					Edges   []assist.DepEdge `json:"edges"`
					Summary string           `json:"summary"`
				}{accepted, result.Summary})
			}

			fmt.Printf("\n🔗 Inferred %s dependencies (%d suggested, %d after validation):\n\n",
				ui.Bold(len(accepted)), len(result.Edges), len(accepted))
			for _, e := range accepted {
				fmt.Printf("  %s %s depends on %s  — %s\n",
					ui.Cyan("→"), ui.BoldMagenta(e.DependentID), ui.BoldMagenta(e.PrerequisiteID), ui.Dim(e.Reason))
			}
			if result.Summary != "" {
				fmt.Printf("\n💡 %s %s\n", ui.BoldWhite("Summary:"), result.Summary)
			}

			if !flagApply {
				fmt.Printf("\n🎯 %s\n", ui.Yellow("Dry run — use --apply to write these dependencies to the task file."))
				return nil
			}

			applied := applyEdges(tasks, accepted)
			data, err := json.MarshalIndent(applied, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfg.Source, data, 0644); err != nil {
				return fmt.Errorf("write task file: %w", err)
			}
			fmt.Printf("\n🏁 Applied %s dependencies to %s.\n", ui.BoldGreen(len(accepted)), cfg.Source)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagApply, "apply", false, "Write accepted deps to the task file (default: dry-run)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Claude model to use (default: Sonnet)")
	cmd.Flags().StringVar(&flagFromFile, "from-file", "", "Load inferred deps from a JSON file instead of calling Claude")

	return cmd
}

// acceptAcyclic filters candidate edges so that adding them to the
// existing dependency set keeps the graph schedulable.
func acceptAcyclic(tasks []task.Task, candidates []assist.DepEdge) []assist.DepEdge {
	current := make([]task.Task, len(tasks))
	copy(current, tasks)

	var accepted []assist.DepEdge
	for _, e := range candidates {
		trial := applyEdges(current, []assist.DepEdge{e})
		if _, err := graph.Build(trial); err != nil {
			continue
		}
		current = trial
		accepted = append(accepted, e)
	}
	return accepted
}

// applyEdges returns a copy of tasks with the edges merged into each
// task's dependency list, skipping duplicates.
func applyEdges(tasks []task.Task, edges []assist.DepEdge) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)

	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].ID] = i
		out[i].DependsOn = append([]string(nil), out[i].DependsOn...)
	}

	for _, e := range edges {
		i, ok := index[e.DependentID]
		if !ok {
			continue
		}
		dup := false
		for _, dep := range out[i].DependsOn {
			if dep == e.PrerequisiteID {
				dup = true
				break
			}
		}
		if !dup {
			out[i].DependsOn = append(out[i].DependsOn, e.PrerequisiteID)
		}
	}
	return out
}

func containsEdge(edges []assist.DepEdge, e assist.DepEdge) bool {
	for _, x := range edges {
		if x.DependentID == e.DependentID && x.PrerequisiteID == e.PrerequisiteID {
			return true
		}
	}
	return false
}

func outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
