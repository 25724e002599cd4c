package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionary(t *testing.T) {
	tax := Default()
	require.NotZero(t, tax.Len())

	canon, ok := tax.Canonical("javascript")
	require.True(t, ok)
	assert.Equal(t, "javascript", canon)

	canon, ok = tax.Canonical("JS")
	require.True(t, ok)
	assert.Equal(t, "javascript", canon)

	canon, ok = tax.Canonical("  NodeJS ")
	require.True(t, ok)
	assert.Equal(t, "node.js", canon)

	_, ok = tax.Canonical("underwater basket weaving")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	doc := []byte(`
entries:
  - canonical: PostgreSQL
    synonyms: [Postgres, psql]
  - canonical: redis
`)

	tax, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, 2, tax.Len())

	canon, ok := tax.Canonical("postgres")
	require.True(t, ok)
	assert.Equal(t, "postgresql", canon)

	// Canonical terms are lowercased on load.
	entries := tax.Entries()
	assert.Equal(t, "postgresql", entries[0].Canonical)
	assert.Equal(t, []string{"postgres", "psql"}, entries[0].Synonyms)
}

func TestParseRejectsEmptyDocuments(t *testing.T) {
	_, err := Parse([]byte("entries: []"))
	require.Error(t, err)

	_, err = Parse([]byte("entries: [{synonyms: [a, b]}]"))
	require.Error(t, err)

	_, err = Parse([]byte("{not yaml"))
	require.Error(t, err)
}

func TestCanonicalOrSelf(t *testing.T) {
	tax := Default()

	assert.Equal(t, "mongodb", tax.CanonicalOrSelf("Mongo"))
	assert.Equal(t, "cobol", tax.CanonicalOrSelf("  COBOL  "))
}
