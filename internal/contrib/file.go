package contrib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a grid file. JSON is chosen by a .json extension,
// anything else is read as YAML.
func LoadFile(path string) (Contributions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Contributions{}, fmt.Errorf("%w: %w", ErrBadFile, err)
	}
	c, err := Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return Contributions{}, fmt.Errorf("%s: %w", path, err)
	}
	if c.Username == "" {
		c.Username = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Parse decodes a grid document and checks its shape.
func Parse(data []byte, isJSON bool) (Contributions, error) {
	var c Contributions
	var err error
	if isJSON {
		err = json.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return Contributions{}, fmt.Errorf("%w: %w", ErrBadFile, err)
	}
	if err := c.Grid().Validate(); err != nil {
		return Contributions{}, err
	}
	return c, nil
}

// Marshal encodes contributions as YAML, the format LoadFile reads.
func Marshal(c Contributions) ([]byte, error) {
	return yaml.Marshal(c)
}
