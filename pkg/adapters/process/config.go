package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToolConfig describes one allow-listed script.
type ToolConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ToolsFile is the structure of tools.yaml.
type ToolsFile struct {
	Tools []ToolConfig `yaml:"tools" json:"tools"`
}

// LoadTools reads a tools file (YAML, or JSON by extension) and returns the tools by name.
// A missing file yields an empty registry.
func LoadTools(path string) (map[string]ToolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ToolConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read tools config: %w", err)
	}

	var cfg ToolsFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	tools := make(map[string]ToolConfig, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		if tool.Name == "" || tool.Command == "" {
			continue
		}
		tools[tool.Name] = tool
	}
	return tools, nil
}
