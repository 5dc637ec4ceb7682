package depotassign

import (
	"math"

	highs "github.com/bartolsthoorn/gohighs/highs"
)

// highsBackend drives the bundled HiGHS engine. It is the default: no
// license required, and LP runs expose row duals and reduced costs.
type highsBackend struct{}

func (highsBackend) Name() string { return SOLVER_HIGHS }

func (highsBackend) Solve(m *AssignmentModel, opt SolveOptions) (*SolveResult, error) {
	hm := &highs.Model{
		ColCosts: m.ColCosts,
		ColLower: m.ColLower,
		ColUpper: m.ColUpper,
		VarTypes: highsVarTypes(m.VarTypes),
	}
	for _, row := range m.Rows {
		cols := make([]int, len(row.Ind))
		for i, c := range row.Ind {
			cols[i] = int(c)
		}
		switch row.Sense {
		case SENSE_EQ:
			hm.AddSparseRow(row.RHS, cols, row.Val, row.RHS)
		case SENSE_GE:
			hm.AddSparseRow(row.RHS, cols, row.Val, math.Inf(1))
		default:
			hm.AddSparseRow(math.Inf(-1), cols, row.Val, row.RHS)
		}
	}

	opts := []highs.SolveOption{highs.WithOutput(false)}
	if opt.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(opt.TimeLimit))
	}
	sol, err := hm.Solve(opts...)
	if err != nil {
		return nil, err
	}

	res := &SolveResult{Status: highsStatus(sol), Objective: sol.Objective}
	if res.Status == StatusOptimal {
		res.X = sol.ColValues
		if len(sol.RowDuals) == len(m.Rows) {
			res.RowDuals = sol.RowDuals
		}
		if len(sol.ColDuals) == m.VarCount {
			res.ColDuals = sol.ColDuals
		}
	}
	return res, nil
}

func highsVarTypes(types []int8) []highs.VariableType {
	// All continuous is HiGHS's default; skip the conversion then.
	allCont := true
	for _, t := range types {
		if t != VAR_CONTINUOUS {
			allCont = false
			break
		}
	}
	if allCont {
		return nil
	}
	out := make([]highs.VariableType, len(types))
	for i, t := range types {
		if t == VAR_CONTINUOUS {
			out[i] = highs.Continuous
		} else {
			out[i] = highs.Integer
		}
	}
	return out
}

func highsStatus(sol *highs.Solution) SolveStatus {
	switch {
	case sol.IsOptimal():
		return StatusOptimal
	case sol.IsInfeasible():
		// covers the combined infeasible-or-unbounded verdict too
		return StatusInfeasible
	case sol.IsUnbounded():
		return StatusUnbounded
	default:
		return StatusNotSolved
	}
}
