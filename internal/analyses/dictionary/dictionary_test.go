package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Len(t, d.WeakPhrases, 14)
	assert.Len(t, d.StrongVerbs, 22)
	assert.Equal(t, "led", d.DefaultStrongVerb())
	assert.InDelta(t, 1.10, d.Weights.Sum(), 1e-9)
}

func TestSynonymsFor(t *testing.T) {
	d := Default()
	assert.Equal(t, []string{"initiative", "program", "engagement", "deliverable"}, d.SynonymsFor("project"))
	assert.Equal(t, []string{"Consider using a more specific verb"}, d.SynonymsFor("unusual"))

	got := d.SynonymsFor("team")
	got[0] = "mutated"
	assert.Equal(t, "team of experts", d.Synonyms["team"][0])
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.WeakPhrases[0] = "changed"
	b := Default()
	assert.Equal(t, "worked", b.WeakPhrases[0])
}

func TestParseOverrides(t *testing.T) {
	d, err := Parse([]byte(`
strongVerbs: [drove, built]
synonyms:
  utilized: [used, applied]
missingSkillLimit: 5
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"drove", "built"}, d.StrongVerbs)
	assert.Equal(t, []string{"used", "applied"}, d.SynonymsFor("utilized"))
	assert.Equal(t, 5, d.MissingSkillLimit)
	// untouched keys keep their defaults
	assert.Len(t, d.WeakPhrases, 14)
	assert.NotEmpty(t, d.SynonymsFor("worked"))
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bad pattern", raw: "keywordPatterns: ['(unclosed']"},
		{name: "negative weight", raw: "weights: {keyword: -0.1}"},
		{name: "oversized weights", raw: "weights: {keyword: 1.5}"},
		{name: "no strong verbs", raw: "strongVerbs: []"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repeatedThreshold: 3\n"), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, d.RepeatedThreshold)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
