package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gridpick/internal/domain"
)

func checkOutput(format string) error {
	switch format {
	case "", "lines", "json", "yaml":
		return nil
	}
	return errors.Errorf("unknown output format %q (want lines, json or yaml)", format)
}

// writeResult prints a pick result. The lines format is one selected id
// per line, suited to xargs.
func writeResult(w io.Writer, result domain.PickResult, format string) error {
	if result.Selected == nil {
		result.Selected = []string{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case "", "lines":
		for _, id := range result.Selected {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	default:
		return checkOutput(format)
	}
}
