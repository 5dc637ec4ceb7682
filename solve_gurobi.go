package depotassign

import (
	"fmt"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
)

// gurobiBackend drives a licensed Gurobi installation through the
// gorobi bindings. Selected with -solver gurobi.
type gurobiBackend struct{}

func (gurobiBackend) Name() string { return SOLVER_GUROBI }

func (gurobiBackend) Solve(m *AssignmentModel, opt SolveOptions) (*SolveResult, error) {
	env, err := gurobi.LoadEnv("depotassign_gurobi.log")
	if err != nil {
		return nil, err
	}
	defer env.Free()
	env.SetIntParam("LogToConsole", int32(0))
	if opt.TimeLimit > 0 {
		env.SetDblParam("TimeLimit", opt.TimeLimit)
	}

	model, err := env.NewModel("depotassign", int32(m.VarCount), m.ColCosts, m.ColLower, m.ColUpper, gurobiVarTypes(m.VarTypes), m.VarNames)
	if err != nil {
		return nil, err
	}
	defer model.Free()

	if err := model.SetIntAttr(gurobi.INT_ATTR_MODELSENSE, gurobi.MINIMIZE); err != nil {
		return nil, err
	}
	for _, row := range m.Rows {
		if err := model.AddConstr(row.Ind, row.Val, gurobiSense(row.Sense), row.RHS, row.Name); err != nil {
			return nil, fmt.Errorf("adding constraint %s: %w", row.Name, err)
		}
	}

	if err := model.Optimize(); err != nil {
		return nil, err
	}

	status, err := model.GetIntAttr(gurobi.INT_ATTR_STATUS)
	if err != nil {
		return nil, err
	}
	res := &SolveResult{Status: gurobiStatus(status)}
	if res.Status != StatusOptimal {
		return res, nil
	}

	res.Objective, err = model.GetDblAttr(gurobi.DBL_ATTR_OBJVAL)
	if err != nil {
		return nil, err
	}
	res.X, err = model.GetDblAttrArray(gurobi.DBL_ATTR_X, 0, int32(m.VarCount))
	if err != nil {
		return nil, err
	}
	// Duals only exist for pure LPs. Their absence degrades to the
	// perturbation estimator, so errors here are not fatal.
	if m.Mode == MODE_RELAX {
		if pi, err := model.GetDblAttrArray(gurobi.DBL_ATTR_PI, 0, int32(len(m.Rows))); err == nil {
			res.RowDuals = pi
		} else {
			Log(3, "Gurobi exposed no row duals: %s", err.Error())
		}
		if rc, err := model.GetDblAttrArray(gurobi.DBL_ATTR_RC, 0, int32(m.VarCount)); err == nil {
			res.ColDuals = rc
		} else {
			Log(3, "Gurobi exposed no reduced costs: %s", err.Error())
		}
	}
	return res, nil
}

func gurobiVarTypes(types []int8) []int8 {
	out := make([]int8, len(types))
	for i, t := range types {
		switch t {
		case VAR_CONTINUOUS:
			out[i] = gurobi.CONTINUOUS
		case VAR_BINARY:
			out[i] = gurobi.BINARY
		default:
			out[i] = gurobi.INTEGER
		}
	}
	return out
}

func gurobiSense(sense int8) int8 {
	switch sense {
	case SENSE_EQ:
		return gurobi.EQUAL
	case SENSE_GE:
		return gurobi.GREATER_EQUAL
	default:
		return gurobi.LESS_EQUAL
	}
}

func gurobiStatus(status int32) SolveStatus {
	switch status {
	case gurobi.OPTIMAL:
		return StatusOptimal
	case gurobi.INFEASIBLE, gurobi.INF_OR_UNBD:
		return StatusInfeasible
	case gurobi.UNBOUNDED:
		return StatusUnbounded
	default:
		return StatusNotSolved
	}
}
