package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"git.solver4all.com/azaryc2s/depotassign"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "depot-solver",
		Usage: "Assign transit buses to depots at minimum total cost",
		Commands: []*cli.Command{
			solveCmd,
			sensitivityCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var commonFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "input",
		Required: true,
		Usage:    "path to the instance JSON",
	},
	&cli.StringFlag{
		Name:  "output",
		Usage: "path for the solved instance; by default the input file is overwritten with the solution added",
	},
	&cli.StringFlag{
		Name:  "objective",
		Value: depotassign.OBJECTIVE_DISTANCE,
		Usage: "objective unit: distance|time",
	},
	&cli.Float64Flag{
		Name:  "capacity-scale",
		Value: 1.0,
		Usage: "multiplicative factor applied to every depot capacity",
	},
	&cli.Float64Flag{
		Name:  "max-distance-km",
		Usage: "compatibility ceiling in km (distance objective only)",
	},
	&cli.Float64Flag{
		Name:  "overflow-penalty",
		Usage: "enable the overflow depot, cost = factor * route's max real cost",
	},
	&cli.StringFlag{
		Name:  "solver",
		Value: depotassign.SOLVER_HIGHS,
		Usage: "solver backend: highs|gurobi",
	},
	&cli.Float64Flag{
		Name:  "time-limit",
		Value: 300,
		Usage: "solver time limit in seconds, 0 for none",
	},
	&cli.StringFlag{
		Name:  "csv-dir",
		Usage: "also export assignment/summary/dual CSVs into this directory",
	},
	&cli.IntFlag{
		Name:  "log",
		Value: 2,
		Usage: "logging verbosity, 1 (errors) to 4 (spam)",
	},
}

var solveCmd = &cli.Command{
	Name:  "solve",
	Usage: "Solve one assignment instance",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "mode",
			Value: depotassign.MODE_INTEGER,
			Usage: "model variant: integer|relax|kmax",
		},
		&cli.IntFlag{
			Name:  "kmax",
			Usage: "max distinct depots per route (kmax mode)",
		},
	}, commonFlags...),
	Action: func(ctx *cli.Context) error {
		depotassign.InitLoggers(ctx.Int("log"))
		cfg := configFromFlags(ctx)
		cfg.Mode = ctx.String("mode")
		cfg.Kmax = ctx.Int("kmax")

		inst, err := depotassign.LoadInstance(ctx.String("input"))
		if err != nil {
			return err
		}

		sol, err := depotassign.Solve(inst, cfg)
		if err != nil {
			return err
		}
		sol.System = sysInfo()
		sol.Comment = fmt.Sprintf("Solver=%s, Mode=%s, Objective=%s, Scale=%g", cfg.Solver, cfg.Mode, cfg.Objective, cfg.CapacityScale)
		inst.Solution = sol

		out := ctx.String("output")
		if out == "" {
			out = ctx.String("input")
		}
		if err := depotassign.SaveInstance(out, inst); err != nil {
			return err
		}
		if dir := ctx.String("csv-dir"); dir != "" {
			if err := exportSolutionCSVs(dir, sol); err != nil {
				return err
			}
		}
		depotassign.Log(2, "Solved %s: objective %.2f (%s)", inst.Name, sol.Objective, sol.Time)
		return nil
	},
}

var sensitivityCmd = &cli.Command{
	Name:  "sensitivity",
	Usage: "Capacity-scale sweep plus per-depot +1 shadow price estimation",
	Flags: append([]cli.Flag{
		&cli.Float64SliceFlag{
			Name:  "scale",
			Usage: "capacity scale factors to sweep (repeatable)",
		},
	}, commonFlags...),
	Action: func(ctx *cli.Context) error {
		depotassign.InitLoggers(ctx.Int("log"))
		cfg := configFromFlags(ctx)
		cfg.Mode = depotassign.MODE_INTEGER

		inst, err := depotassign.LoadInstance(ctx.String("input"))
		if err != nil {
			return err
		}
		backend, err := depotassign.NewBackend(cfg.Solver)
		if err != nil {
			return err
		}

		scales := ctx.Float64Slice("scale")
		if len(scales) == 0 {
			scales = []float64{1.0}
		}
		points := depotassign.SweepCapacityScale(inst, cfg, backend, scales)

		// Estimate shadow prices at the largest feasible scale.
		var base *depotassign.SweepPoint
		for i := range points {
			if points[i].Feasible {
				base = &points[i]
			}
		}
		var estimates []depotassign.ShadowEstimate
		if base == nil {
			depotassign.Log(1, "No feasible scale among %v; skipping shadow price estimation", scales)
		} else {
			cfg.CapacityScale = base.Scale
			estimates = depotassign.EstimateShadowPrices(inst, cfg, backend, base.Objective)
		}

		dir := ctx.String("csv-dir")
		if dir == "" {
			dir = filepath.Dir(ctx.String("input"))
		}
		if err := exportSweepCSV(dir, points); err != nil {
			return err
		}
		if len(estimates) > 0 {
			if err := exportEstimatesCSV(dir, estimates); err != nil {
				return err
			}
		}
		return nil
	},
}

func configFromFlags(ctx *cli.Context) depotassign.SolveConfig {
	cfg := depotassign.DefaultConfig()
	cfg.Objective = ctx.String("objective")
	cfg.CapacityScale = ctx.Float64("capacity-scale")
	cfg.MaxDistanceKm = ctx.Float64("max-distance-km")
	cfg.OverflowPenalty = ctx.Float64("overflow-penalty")
	cfg.Solver = ctx.String("solver")
	cfg.TimeLimit = ctx.Float64("time-limit")
	return cfg
}

func sysInfo() depotassign.SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	info := depotassign.SysInfo{Platform: hostStat.Platform}
	if len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	}
	if vmStat != nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}
	return info
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func exportSolutionCSVs(dir string, sol *depotassign.Solution) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	rows := make([][]string, 0, len(sol.Assignments))
	for _, a := range sol.Assignments {
		rows = append(rows, []string{a.Route, a.Depot, strconv.Itoa(a.Buses), fmt.Sprintf("%.2f", a.UnitCost)})
	}
	if err := writeCSV(filepath.Join(dir, "assignments.csv"), []string{"route", "depot", "buses", "unit_cost"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, d := range sol.DepotSummary {
		rows = append(rows, []string{d.Depot, strconv.Itoa(d.Buses), fmt.Sprintf("%.2f", d.Capacity)})
	}
	if err := writeCSV(filepath.Join(dir, "depot_summary.csv"), []string{"depot", "buses_assigned", "capacity"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, sp := range sol.ShadowPrices {
		price := "unavailable"
		if sp.Available {
			price = fmt.Sprintf("%.4f", sp.Price)
		}
		rows = append(rows, []string{sp.Depot, price})
	}
	if err := writeCSV(filepath.Join(dir, "shadow_prices.csv"), []string{"depot", "shadow_price"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, rc := range sol.ReducedCosts {
		cost := "unavailable"
		if rc.Available {
			cost = fmt.Sprintf("%.4f", rc.Cost)
		}
		rows = append(rows, []string{rc.Route, rc.Depot, cost})
	}
	return writeCSV(filepath.Join(dir, "reduced_costs.csv"), []string{"route", "depot", "reduced_cost"}, rows)
}

func exportSweepCSV(dir string, points []depotassign.SweepPoint) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			fmt.Sprintf("%g", p.Scale),
			fmt.Sprintf("%.2f", p.Objective),
			strconv.FormatBool(p.Feasible),
			p.Note,
		})
	}
	return writeCSV(filepath.Join(dir, "sensitivity_scales.csv"), []string{"scale", "objective", "feasible", "note"}, rows)
}

func exportEstimatesCSV(dir string, estimates []depotassign.ShadowEstimate) error {
	rows := make([][]string, 0, len(estimates))
	for _, e := range estimates {
		rows = append(rows, []string{
			e.Depot,
			fmt.Sprintf("%.2f", e.BaseCapacity),
			fmt.Sprintf("%.2f", e.BaseObjective),
			fmt.Sprintf("%.2f", e.Objective),
			fmt.Sprintf("%.4f", e.Delta),
			e.Note,
		})
	}
	return writeCSV(filepath.Join(dir, "shadow_estimates.csv"),
		[]string{"depot", "base_capacity", "base_objective", "objective_plus1", "delta_objective", "note"}, rows)
}
