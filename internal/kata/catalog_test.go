package kata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajeshpillai/rust-katas/internal/kata"
	"github.com/rajeshpillai/rust-katas/internal/model"
)

func demoKatas() []model.Kata {
	return []model.Kata{
		{ID: "own-1", Phase: 1, PhaseTitle: "Ownership", Sequence: 1, Title: "Moves"},
		{ID: "own-2", Phase: 1, PhaseTitle: "Ownership", Sequence: 2, Title: "Borrows"},
		{ID: "life-1", Phase: 2, PhaseTitle: "Lifetimes", Sequence: 1, Title: "Elision"},
	}
}

func TestCatalogGet(t *testing.T) {
	c := kata.NewCatalog(demoKatas())

	k, ok := c.Get("own-2")
	assert.True(t, ok)
	assert.Equal(t, "Borrows", k.Title)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCatalogListGroupsByPhase(t *testing.T) {
	c := kata.NewCatalog(demoKatas())

	list := c.List()
	assert.Len(t, list.Phases, 2)

	assert.Equal(t, 1, list.Phases[0].Phase)
	assert.Equal(t, "Ownership", list.Phases[0].Title)
	assert.Len(t, list.Phases[0].Katas, 2)
	assert.Equal(t, "own-1", list.Phases[0].Katas[0].ID)
	assert.Equal(t, "own-2", list.Phases[0].Katas[1].ID)

	assert.Equal(t, 2, list.Phases[1].Phase)
	assert.Equal(t, "Lifetimes", list.Phases[1].Title)
	assert.Equal(t, "Elision", list.Phases[1].Katas[0].Title)
}

func TestCatalogListEmpty(t *testing.T) {
	c := kata.NewCatalog(nil)

	list := c.List()
	assert.NotNil(t, list.Phases)
	assert.Empty(t, list.Phases)
	assert.Equal(t, 0, c.Len())
}
