package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lakesync/internal/domain"
)

// planFile is the YAML shape of an operator-supplied sync plan.
type planFile struct {
	Targets []planTarget `yaml:"targets"`
}

type planTarget struct {
	Kind          string `yaml:"kind"`
	Query         string `yaml:"query"`
	Table         string `yaml:"table"`
	JunctionTable string `yaml:"junction_table,omitempty"`
}

// LoadPlan reads a YAML sync plan and converts it into run order targets.
// Every entry must name a known entity kind, a query, and a target table.
func LoadPlan(path string) ([]domain.SyncTarget, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-controlled
	if err != nil {
		return nil, fmt.Errorf("read plan %s: %w", path, err)
	}

	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if len(pf.Targets) == 0 {
		return nil, fmt.Errorf("plan %s defines no targets", path)
	}

	targets := make([]domain.SyncTarget, 0, len(pf.Targets))
	seen := make(map[domain.EntityKind]bool, len(pf.Targets))
	for i, t := range pf.Targets {
		kind := domain.EntityKind(t.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("plan target %d: unknown entity kind %q", i, t.Kind)
		}
		if seen[kind] {
			return nil, fmt.Errorf("plan target %d: duplicate entity kind %q", i, t.Kind)
		}
		seen[kind] = true
		if t.Query == "" {
			return nil, fmt.Errorf("plan target %d (%s): query is required", i, t.Kind)
		}
		if t.Table == "" {
			return nil, fmt.Errorf("plan target %d (%s): table is required", i, t.Kind)
		}
		if t.JunctionTable != "" && kind != domain.KindOrder {
			return nil, fmt.Errorf("plan target %d (%s): junction_table is only valid for Order", i, t.Kind)
		}
		targets = append(targets, domain.SyncTarget{
			Kind:          kind,
			Query:         t.Query,
			Table:         t.Table,
			JunctionTable: t.JunctionTable,
		})
	}
	return targets, nil
}

// ResolvePlan returns the operator plan when PlanPath is set, otherwise the
// built-in defaults.
func (c *Config) ResolvePlan() ([]domain.SyncTarget, error) {
	if c.PlanPath == "" {
		return domain.DefaultPlan(), nil
	}
	return LoadPlan(c.PlanPath)
}
