package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SchemeToJSON writes a single key/colour mapping to a standalone JSON file,
// creating parent directories as needed. Returns the written path.
func SchemeToJSON(scheme map[string]string, path string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating scheme directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(scheme, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing scheme %q: %w", path, err)
	}
	return path, nil
}

// SchemeFromJSON reads a key/colour mapping from a standalone JSON file.
// Colour validation happens when the scheme is saved into a document.
func SchemeFromJSON(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheme %q: %w", path, err)
	}

	var scheme map[string]string
	if err := json.Unmarshal(raw, &scheme); err != nil {
		return nil, fmt.Errorf("parsing scheme %q: %w", path, err)
	}
	return scheme, nil
}
