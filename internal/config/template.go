package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// ColumnTemplate describes one column created with every new board.
type ColumnTemplate struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// BoardTemplate lists the columns of a new board, in display order.
type BoardTemplate struct {
	Columns []ColumnTemplate `yaml:"columns"`
}

// DefaultBoardTemplate returns the built-in Backlog/Todo/In Progress/Done layout.
func DefaultBoardTemplate() BoardTemplate {
	return BoardTemplate{Columns: []ColumnTemplate{
		{Name: "Backlog", Color: "#6B7280"},
		{Name: "Todo", Color: "#3B82F6"},
		{Name: "In Progress", Color: "#F59E0B"},
		{Name: "Done", Color: "#10B981"},
	}}
}

// LoadBoardTemplate reads a board template from a YAML file:
//
//	columns:
//	  - name: Todo
//	    color: "#3B82F6"
func LoadBoardTemplate(path string) (BoardTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BoardTemplate{}, fmt.Errorf("read board template: %w", err)
	}
	var tmpl BoardTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return BoardTemplate{}, fmt.Errorf("parse board template %s: %w", path, err)
	}
	return tmpl, nil
}

func (t BoardTemplate) Validate() error {
	var errs *multierror.Error
	seen := make(map[string]bool, len(t.Columns))
	for i, col := range t.Columns {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			errs = multierror.Append(errs, fmt.Errorf("board template column %d has no name", i))
			continue
		}
		if seen[name] {
			errs = multierror.Append(errs, fmt.Errorf("board template column %q is listed twice", name))
		}
		seen[name] = true
	}
	return errs.ErrorOrNil()
}
