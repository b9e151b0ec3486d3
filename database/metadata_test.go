package database

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeSessionMetadataTolerant(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want SessionMetadata
	}{
		{
			name: "empty blob",
			blob: "",
			want: EmptyMetadata(),
		},
		{
			name: "null",
			blob: "null",
			want: EmptyMetadata(),
		},
		{
			name: "corrupt",
			blob: "{not json",
			want: EmptyMetadata(),
		},
		{
			name: "wrong types",
			blob: `{"requirements":"scrape","constraints":null,"techStack":["go",3,"sql"],"databases":{"a":1}}`,
			want: SessionMetadata{
				Requirements: []string{},
				Constraints:  []string{},
				TechStack:    []string{"go", "sql"},
				Databases:    []DatabaseSpec{},
			},
		},
		{
			name: "databases without names are dropped",
			blob: `{"databases":[{"type":"postgres","name":"orders"},{"type":"redis"},"sqlite"]}`,
			want: SessionMetadata{
				Requirements: []string{},
				Constraints:  []string{},
				TechStack:    []string{},
				Databases:    []DatabaseSpec{{Type: "postgres", Name: "orders"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSessionMetadata(datatypes.JSON(tt.blob))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeSessionMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeAlwaysEmitsArrays(t *testing.T) {
	blob, err := SessionMetadata{}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"requirements":[],"constraints":[],"techStack":[],"databases":[]}`, string(blob))
}
