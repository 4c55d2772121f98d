package ontology

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndGetTerm(t *testing.T) {
	o := New()
	disease := term.New("DOID:4", term.WithName("disease"))

	require.NoError(t, o.Add(disease))

	got, err := o.Term("DOID:4")
	require.NoError(t, err)
	assert.Same(t, disease, got)
	assert.Equal(t, 1, o.Len())
}

func TestTerm_NotFound(t *testing.T) {
	o := New()

	got, err := o.Term("DOID:404")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrTermNotFound)
	assert.ErrorContains(t, err, "DOID:404")
}

func TestAdd_Rejects(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		o := New()
		assert.ErrorIs(t, o.Add(term.New("")), ErrEmptyID)
		assert.Zero(t, o.Len())
	})

	t.Run("duplicate id", func(t *testing.T) {
		o := New()
		first := term.New("DOID:4", term.WithName("first"))
		require.NoError(t, o.Add(first))

		err := o.Add(term.New("DOID:4", term.WithName("second")))
		assert.ErrorIs(t, err, ErrDuplicateTerm)

		got, err := o.Term("DOID:4")
		require.NoError(t, err)
		assert.Same(t, first, got, "the first definition must win")
	})
}

func TestTerms_InsertionOrderSnapshot(t *testing.T) {
	o := New()
	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, o.Add(term.New(id)))
	}

	terms := o.Terms()
	require.Len(t, terms, 3)
	assert.Equal(t, "C", terms[0].ID)
	assert.Equal(t, "A", terms[1].ID)
	assert.Equal(t, "B", terms[2].ID)

	terms[0] = nil
	assert.NotNil(t, o.Terms()[0], "callers must not be able to modify the ontology's slice")
}

func TestResolveAlternate(t *testing.T) {
	o := New()
	require.NoError(t, o.Add(term.New("DOID:9352", term.WithAlternateIDs("DOID:10182", "DOID:1837"))))

	got, ok := o.ResolveAlternate("DOID:1837")
	require.True(t, ok)
	assert.Equal(t, "DOID:9352", got.ID)

	_, ok = o.ResolveAlternate("DOID:9352")
	assert.False(t, ok, "primary ids are not alternates")
}

func TestCountObsolete(t *testing.T) {
	o := New()
	require.NoError(t, o.Add(term.New("A")))
	require.NoError(t, o.Add(term.New("B", term.WithObsolete(true))))
	require.NoError(t, o.Add(term.New("C", term.WithObsolete(true))))

	assert.Equal(t, 2, o.CountObsolete())
	assert.Equal(t, 3, o.Len())
}

func TestOntology_ConcurrentReads(t *testing.T) {
	o := New()
	const n = 100
	for i := range n {
		require.NoError(t, o.Add(term.New(fmt.Sprintf("DOID:%d", i))))
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(i int) {
			defer wg.Done()
			got, err := o.Term(fmt.Sprintf("DOID:%d", i))
			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, o.Terms(), n)
		}(i)
	}
	wg.Wait()
}
