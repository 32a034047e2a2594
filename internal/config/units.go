package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
)

// unitTablesFile is the YAML layout of a unit-table file. Every entry is optional and
// overrides the default rules, e.g.
//
//	damage:
//	  Virus: {AI: 9, Tech: 6}
//	repair:
//	  Tech: {Firewall: 2}
//	restricted: [AI, Program, Firewall]
type unitTablesFile struct {
	Damage     map[string]map[string]int `yaml:"damage"`
	Repair     map[string]map[string]int `yaml:"repair"`
	Restricted *[]string                 `yaml:"restricted"`
}

// LoadUnitTables reads a unit-table file over the default tables.
func LoadUnitTables(path string) (*core.UnitTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit tables: %w", err)
	}
	return ParseUnitTables(data)
}

// ParseUnitTables decodes YAML unit tables over the defaults and validates the result.
func ParseUnitTables(data []byte) (*core.UnitTables, error) {
	var f unitTablesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, core.NewConfigError("game.units_file", err.Error())
	}

	tables := core.DefaultUnitTables()
	if err := overlay(&tables.Damage, f.Damage, "units.damage"); err != nil {
		return nil, err
	}
	if err := overlay(&tables.Repair, f.Repair, "units.repair"); err != nil {
		return nil, err
	}
	if f.Restricted != nil {
		tables.Restricted = [core.NumUnitTypes]bool{}
		for _, name := range *f.Restricted {
			t, err := unitTypeByName("units.restricted", name)
			if err != nil {
				return nil, err
			}
			tables.Restricted[t] = true
		}
	}

	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

func overlay(dst *[core.NumUnitTypes][core.NumUnitTypes]int, src map[string]map[string]int, field string) error {
	for from, row := range src {
		a, err := unitTypeByName(field, from)
		if err != nil {
			return err
		}
		for to, amount := range row {
			b, err := unitTypeByName(field, to)
			if err != nil {
				return err
			}
			dst[a][b] = amount
		}
	}
	return nil
}

func unitTypeByName(field, name string) (core.UnitType, error) {
	for t := core.UnitType(0); int(t) < core.NumUnitTypes; t++ {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, core.NewConfigError(field, fmt.Sprintf("unknown unit type %q", name))
}
