package options

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// optionsFile is the on-disk layout of an option list.
//
//	options = ["red", "green"]
//
//	[[option]]
//	label = "Something 1"
//	value = "Something1"
type optionsFile struct {
	Options []string            `toml:"options"`
	Records []map[string]string `toml:"option"`
}

// LoadFile reads an option list from a TOML file. Plain entries come first,
// followed by record entries, each in file order.
func LoadFile(path string) ([]*Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}
	return Parse(data)
}

// Parse decodes an option list from TOML bytes
func Parse(data []byte) ([]*Option, error) {
	var f optionsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}

	list := Texts(f.Options...)
	for _, fields := range f.Records {
		list = append(list, Record(fields))
	}
	return list, nil
}
