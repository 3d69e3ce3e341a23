// Package output persists generated text as timestamped artifact files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/prompt"
)

const timestampLayout = "20060102T150405Z"

// Save writes text to dir as {UTC timestamp}_{promptType}.txt, creating dir
// if needed. Timestamps are second-granularity; colliding invocations are not
// deduplicated.
func Save(text string, promptType prompt.Type, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", time.Now().UTC().Format(timestampLayout), promptType)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return path, nil
}
