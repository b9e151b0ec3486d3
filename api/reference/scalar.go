package reference

// page rendering adapted from github.com/MarceloPetrucio/go-scalar-api-reference

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	_ "backend/docs"

	"github.com/swaggo/swag/v2"
)

const defaultCDN = "https://cdn.jsdelivr.net/npm/@scalar/api-reference"

type Options struct {
	CDN       string `json:"-"`
	PageTitle string `json:"-"`
	SpecURL   string `json:"url,omitempty"`
	DarkMode  bool   `json:"darkMode"`
	Layout    string `json:"layout,omitempty"`
}

func ApiReferenceHTML(options Options) string {
	if options.CDN == "" {
		options.CDN = defaultCDN
	}
	if options.PageTitle == "" {
		options.PageTitle = "Scalar API Reference"
	}
	config, _ := json.Marshal(options)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <title>%s</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="%s" data-configuration="%s"></script>
    <script src="%s"></script>
  </body>
</html>
`, html.EscapeString(options.PageTitle), html.EscapeString(options.SpecURL), html.EscapeString(string(config)), options.CDN)
}

func ScalarReference(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(ApiReferenceHTML(Options{
		SpecURL:   "/reference/openapi.json",
		PageTitle: "Automation Sessions API",
		DarkMode:  true,
	})))
}

// OpenAPI serves the document registered by the docs package.
func OpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
