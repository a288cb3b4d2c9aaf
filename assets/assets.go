// Package assets holds static files compiled into the binary.
package assets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// Categories returns the built-in expense category list. Categories are
// suggestions only: expenses may carry any non-empty category string.
func Categories() ([]string, error) {
	var f categoriesFile
	if err := yaml.Unmarshal(categoriesYAML, &f); err != nil {
		return nil, fmt.Errorf("parsing embedded category list: %w", err)
	}
	return f.Categories, nil
}
