// Package env reads dotenv files so that settings normally passed as
// RIGID2D_* environment variables can live next to the config.
package env

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/subosito/gotenv"
)

// DefaultFile is read at startup when present.
const DefaultFile = ".env"

// Parse returns the assignments in r. Comments, "export" prefixes and quoted
// values follow the usual dotenv rules; a malformed line is an error.
func Parse(r io.Reader) (map[string]string, error) {
	vars, err := gotenv.StrictParse(r)
	if err != nil {
		return nil, err
	}
	return vars, nil
}

// Load sets the variables from path whose names start with prefix. Variables
// already present in the environment win. A missing file is not an error.
// It returns the names it set.
func Load(path, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var set []string
	for k, v := range vars {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return set, err
		}
		set = append(set, k)
	}
	return set, nil
}
