package sessions

import (
	"testing"

	"backend/database"

	"github.com/stretchr/testify/assert"
)

func TestDownloadFilename(t *testing.T) {
	cases := []struct {
		name     string
		language database.Language
		want     string
	}{
		{"scraper", database.LanguagePython, "scraper.py"},
		{"price  watcher\tdaily", database.LanguageJavascript, "price-watcher-daily.js"},
		{`say "hi"`, database.LanguageTypescript, "say-hi.ts"},
		{"deploy", database.LanguageBash, "deploy.sh"},
		{"notes", database.Language("text"), "notes.txt"},
		{"   ", database.LanguagePython, "automation.py"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			a := &database.Automation{Name: tc.name, Language: tc.language}
			assert.Equal(t, tc.want, DownloadFilename(a))
		})
	}
}
