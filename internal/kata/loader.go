// Package kata loads the exercise catalog from disk and serves it as an
// immutable, in-memory snapshot.
//
// Katas are markdown files with a YAML frontmatter block, laid out as
// KATAS_DIR/<phase-dir>/<kata>.md. Everything is parsed once at startup;
// after that the catalog is shared read-only across requests, so no locking
// is ever needed.
package kata

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rajeshpillai/rust-katas/internal/model"
)

// frontmatter is the YAML header of a kata file. Body sections (description,
// code blocks, explanation) live in the markdown below it.
type frontmatter struct {
	ID         string   `yaml:"id"`
	Phase      int      `yaml:"phase"`
	PhaseTitle string   `yaml:"phase_title"`
	Sequence   int      `yaml:"sequence"`
	Title      string   `yaml:"title"`
	Hints      []string `yaml:"hints"`
}

// Load reads every kata under dir and returns them sorted by (phase,
// sequence). A missing directory is a warning, not an error — the server
// still starts, just with an empty catalog. Individual files that fail to
// parse are logged and skipped so one bad kata can't take the catalog down.
func Load(dir string, logger *slog.Logger) ([]model.Kata, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Warn("katas directory not found", slog.String("dir", dir))
		return []model.Kata{}, nil
	}

	phaseDirs, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("kata: reading katas dir %s: %w", dir, err)
	}

	katas := []model.Kata{}
	for _, phaseDir := range phaseDirs {
		if !phaseDir.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(dir, phaseDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("kata: reading phase dir %s: %w", phaseDir.Name(), err)
		}

		for _, file := range files {
			if file.IsDir() || filepath.Ext(file.Name()) != ".md" {
				continue
			}

			path := filepath.Join(dir, phaseDir.Name(), file.Name())
			k, err := parseFile(path)
			if err != nil {
				logger.Error("failed to parse kata file",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				continue
			}

			logger.Info("loaded kata",
				slog.String("id", k.ID),
				slog.String("title", k.Title),
				slog.Int("phase", k.Phase),
			)
			katas = append(katas, k)
		}
	}

	sort.SliceStable(katas, func(i, j int) bool {
		if katas[i].Phase != katas[j].Phase {
			return katas[i].Phase < katas[j].Phase
		}
		return katas[i].Sequence < katas[j].Sequence
	})

	logger.Info("kata catalog loaded", slog.Int("count", len(katas)))
	return katas, nil
}

// parseFile parses one kata file: YAML frontmatter between the first two
// "---" markers, then markdown sections keyed by "## " headings.
func parseFile(path string) (model.Kata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.Kata{}, fmt.Errorf("reading file: %w", err)
	}

	parts := strings.SplitN(string(content), "---", 3)
	if len(parts) < 3 {
		return model.Kata{}, fmt.Errorf("missing frontmatter delimiters")
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return model.Kata{}, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if fm.ID == "" {
		return model.Kata{}, fmt.Errorf("frontmatter has no id")
	}

	body := parts[2]

	hints := fm.Hints
	if hints == nil {
		hints = []string{} // serialise as [], not null
	}

	return model.Kata{
		ID:                          fm.ID,
		Phase:                       fm.Phase,
		PhaseTitle:                  fm.PhaseTitle,
		Sequence:                    fm.Sequence,
		Title:                       fm.Title,
		Hints:                       hints,
		Description:                 extractSection(body, "Description"),
		BrokenCode:                  extractCodeBlock(body, "Broken Code"),
		CorrectCode:                 extractCodeBlock(body, "Correct Code"),
		Explanation:                 extractSection(body, "Explanation"),
		CompilerErrorInterpretation: extractSection(body, "Compiler Error Interpretation"),
	}, nil
}

// extractSection returns the trimmed text between "## <heading>" and the
// next "## " heading (or end of file). Missing sections come back empty.
func extractSection(body, heading string) string {
	marker := "## " + heading
	start := strings.Index(body, marker)
	if start < 0 {
		return ""
	}

	after := body[start+len(marker):]
	if end := strings.Index(after, "\n## "); end >= 0 {
		after = after[:end]
	}
	return strings.TrimSpace(after)
}

// extractCodeBlock returns the contents of the first fenced code block in a
// section, with the language tag line skipped. A section without a fence is
// returned as-is.
func extractCodeBlock(body, heading string) string {
	section := extractSection(body, heading)

	start := strings.Index(section, "```")
	if start < 0 {
		return section
	}

	after := section[start+3:]
	// Skip the language tag line ("rust", usually).
	if nl := strings.Index(after, "\n"); nl >= 0 {
		after = after[nl+1:]
	}

	if end := strings.Index(after, "```"); end >= 0 {
		after = after[:end]
	}
	return strings.TrimSpace(after)
}
