package kata

import (
	"log/slog"

	"github.com/rajeshpillai/rust-katas/internal/model"
)

// Catalog is an immutable snapshot of the kata list, built once at startup
// and shared read-only by every request afterwards.
type Catalog struct {
	katas []model.Kata
	byID  map[string]model.Kata
}

// NewCatalog builds a catalog from already-loaded katas. The input order is
// preserved, so callers should pass katas sorted by (phase, sequence) —
// Load does this.
func NewCatalog(katas []model.Kata) *Catalog {
	byID := make(map[string]model.Kata, len(katas))
	for _, k := range katas {
		byID[k.ID] = k
	}
	return &Catalog{katas: katas, byID: byID}
}

// LoadCatalog loads the katas under dir and wraps them in a Catalog.
func LoadCatalog(dir string, logger *slog.Logger) (*Catalog, error) {
	katas, err := Load(dir, logger)
	if err != nil {
		return nil, err
	}
	return NewCatalog(katas), nil
}

// Len reports how many katas the catalog holds.
func (c *Catalog) Len() int {
	return len(c.katas)
}

// Get returns the kata with the given ID.
func (c *Catalog) Get(id string) (model.Kata, bool) {
	k, ok := c.byID[id]
	return k, ok
}

// List groups the catalog by phase for the list endpoint. Phases appear in
// ascending order and katas keep their sequence order within each phase.
func (c *Catalog) List() model.KataListResponse {
	phases := []model.PhaseGroup{}

	for _, k := range c.katas {
		summary := model.KataSummary{
			ID:       k.ID,
			Sequence: k.Sequence,
			Title:    k.Title,
		}

		if n := len(phases); n > 0 && phases[n-1].Phase == k.Phase {
			phases[n-1].Katas = append(phases[n-1].Katas, summary)
			continue
		}

		phases = append(phases, model.PhaseGroup{
			Phase: k.Phase,
			Title: k.PhaseTitle,
			Katas: []model.KataSummary{summary},
		})
	}

	return model.KataListResponse{Phases: phases}
}
