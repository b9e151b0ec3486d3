package reference

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPIDocumentIsValidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	OpenAPI(rec, httptest.NewRequest("GET", "/reference/openapi.json", nil))
	require.Equal(t, 200, rec.Code)

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/sessions/{session_id}/extract-context")
	assert.Contains(t, doc.Paths["/sessions/{session_id}"], "delete")
}

func TestScalarReferencePointsAtDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	ScalarReference(rec, httptest.NewRequest("GET", "/reference", nil))
	assert.Contains(t, rec.Body.String(), `data-url="/reference/openapi.json"`)
}
