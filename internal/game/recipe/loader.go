package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDir reads every .yaml/.yml file in dir and parses each as a Recipe.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns the recipes in file-name order, each passing
// Validate, or a non-nil error naming the offending file.
func LoadDir(dir string) ([]Recipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)

	recipes := make([]Recipe, 0, len(paths))
	for _, path := range paths {
		r, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// LoadFile parses a single recipe YAML file.
//
// Postcondition: Returns a validated Recipe or a non-nil error.
func LoadFile(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("parsing recipe file %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return Recipe{}, fmt.Errorf("validating recipe file %s: %w", path, err)
	}
	return r, nil
}
