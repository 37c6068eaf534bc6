package input

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads a file and decodes it into a generic document,
// resolving JSON vs YAML by extension and falling back to trying both
// for unknown extensions. An unreadable or unparsable file is a
// terminal error for the scan.
func LoadDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}

	var doc map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s as YAML: %w", path, err)
		}
	case ".json", ".har":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s as JSON: %w", path, err)
		}
	default:
		if json.Unmarshal(data, &doc) != nil {
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("failed to parse %s as JSON or YAML: %w", path, err)
			}
		}
	}
	return doc, nil
}

// IsURL reports whether a scan argument is a live target rather than a
// local file.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}
