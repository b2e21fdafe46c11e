// Command vroute - YAML parameter files.
//
// A parameter file overrides solver knobs; flags override the file. All
// fields are optional.
package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/vroute/ils"
)

// paramsFile mirrors the tunable subset of ils.Options.
type paramsFile struct {
	ILS struct {
		MaxNoImprovement *int `yaml:"max_no_improvement"`
		HistorySize      *int `yaml:"history_size"`
	} `yaml:"ils"`

	Penalty struct {
		SolutionsBetweenUpdates *int     `yaml:"solutions_between_updates"`
		PenaltyIncrease         *float64 `yaml:"penalty_increase"`
		PenaltyDecrease         *float64 `yaml:"penalty_decrease"`
		TargetFeasible          *float64 `yaml:"target_feasible"`
		FeasTolerance           *float64 `yaml:"feas_tolerance"`
		MinPenalty              *float64 `yaml:"min_penalty"`
		MaxPenalty              *float64 `yaml:"max_penalty"`
	} `yaml:"penalty"`

	LocalSearch struct {
		Exhaustive         *bool    `yaml:"exhaustive"`
		GranularNeighbours *int     `yaml:"granular_neighbours"`
		OverlapTolerance   *float64 `yaml:"overlap_tolerance"`
		PerturbationSize   *int     `yaml:"perturbation_size"`
	} `yaml:"local_search"`
}

// applyParamsFile loads path and overlays its settings onto opts.
func applyParamsFile(path string, opts *ils.Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var pf paramsFile
	if err = yaml.Unmarshal(raw, &pf); err != nil {
		return err
	}

	setInt(pf.ILS.MaxNoImprovement, &opts.ILS.MaxNoImprovement)
	setInt(pf.ILS.HistorySize, &opts.ILS.HistorySize)

	setInt(pf.Penalty.SolutionsBetweenUpdates, &opts.Penalty.SolutionsBetweenUpdates)
	setFloat(pf.Penalty.PenaltyIncrease, &opts.Penalty.PenaltyIncrease)
	setFloat(pf.Penalty.PenaltyDecrease, &opts.Penalty.PenaltyDecrease)
	setFloat(pf.Penalty.TargetFeasible, &opts.Penalty.TargetFeasible)
	setFloat(pf.Penalty.FeasTolerance, &opts.Penalty.FeasTolerance)
	setFloat(pf.Penalty.MinPenalty, &opts.Penalty.MinPenalty)
	setFloat(pf.Penalty.MaxPenalty, &opts.Penalty.MaxPenalty)

	if pf.LocalSearch.Exhaustive != nil {
		opts.LocalSearch.Exhaustive = *pf.LocalSearch.Exhaustive
	}
	setInt(pf.LocalSearch.GranularNeighbours, &opts.LocalSearch.GranularNeighbours)
	setFloat(pf.LocalSearch.OverlapTolerance, &opts.LocalSearch.OverlapTolerance)
	setInt(pf.LocalSearch.PerturbationSize, &opts.LocalSearch.PerturbationSize)

	return nil
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(src *float64, dst *float64) {
	if src != nil {
		*dst = *src
	}
}
