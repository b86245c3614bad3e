package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFromDirectory loads all prompt JSON files from a directory tree.
// Expected structure:
//
//	baseDir/
//	  prompts/
//	    report/
//	      humanize.json
//	    vision/
//	      page_elements.json
//
// Files override the built-in defaults with the same ID.
func LoadFromDirectory(baseDir string) error {
	registry := Get()

	promptDir := filepath.Join(baseDir, "prompts")
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", promptDir)
	}

	loaded := 0
	err := filepath.Walk(promptDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if t.ID == "" {
			t.ID = idFromPath(path, promptDir)
		}
		if t.Category == "" {
			t.Category = categoryFromPath(path, promptDir)
		}
		if err := registry.Register(&t); err != nil {
			return fmt.Errorf("failed to register %s: %w", t.ID, err)
		}
		loaded++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("[prompt.Loader] Loaded %d prompt files from %s\n", loaded, baseDir)
	return nil
}

// idFromPath creates a prompt ID from the file path,
// e.g. "prompts/report/humanize.json" -> "report.humanize".
func idFromPath(path, baseDir string) string {
	relPath, _ := filepath.Rel(baseDir, path)
	relPath = strings.TrimSuffix(relPath, ".json")
	return strings.ReplaceAll(relPath, string(filepath.Separator), ".")
}

func categoryFromPath(path, baseDir string) string {
	relPath, _ := filepath.Rel(baseDir, path)
	parts := strings.Split(relPath, string(filepath.Separator))
	if len(parts) > 1 {
		return parts[0]
	}
	return "general"
}
