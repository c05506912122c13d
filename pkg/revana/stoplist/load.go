package stoplist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlStoplist is the YAML file shape: a single "terms" list.
type yamlStoplist struct {
	Terms []string `yaml:"terms"`
}

// Load reads a stopword file and returns a Manager. YAML files
// (.yaml/.yml) carry a "terms" list; anything else is read as plain
// text, one word per line, with "#" comments ignored.
func Load(path string) (*Manager, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadPlain(path)
	}
}

func loadYAML(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	var sl yamlStoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w", err)
	}
	return NewManager(sl.Terms), nil
}

func loadPlain(path string) (*Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stoplist: %w", err)
	}
	return NewManager(terms), nil
}
