package agents

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTemplates(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	var ids []string
	for _, tmpl := range r.List() {
		ids = append(ids, tmpl.ID)
		assert.NotEmpty(t, tmpl.SystemPrompt, tmpl.ID)
		assert.NotEmpty(t, tmpl.InitialMessage, tmpl.ID)
		assert.NotEmpty(t, tmpl.Questions, tmpl.ID)
	}
	assert.Equal(t, []string{"research", "webapp_developer", "web_crawler"}, ids)

	crawler, ok := r.Get("web_crawler")
	require.True(t, ok)
	assert.Equal(t, "globe", crawler.Icon)
	assert.Contains(t, crawler.Questions[4].Options, `"Next" button clicking`)

	webapp, _ := r.Get("webapp_developer")
	assert.Equal(t, []string{"Yes", "No", "Not sure"}, webapp.Questions[7].Options)

	assert.Contains(t, r.GenerationGuidance("research"), "Error retry logic")
	assert.Empty(t, r.GenerationGuidance("general"))

	_, ok = r.Get("general")
	assert.False(t, ok)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"t/a.yaml": {Data: []byte("id: same\nname: A\n")},
		"t/b.yaml": {Data: []byte("id: same\nname: B\n")},
	}
	_, err := loadFS(fsys, "t")
	assert.ErrorContains(t, err, "duplicate template id")
}
