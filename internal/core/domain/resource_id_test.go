package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/core/domain"
)

func TestNewResourceID_Canonicalizes(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "already canonical",
			path: "/project/src/a.ts",
			want: "/project/src/a.ts",
		},
		{
			name: "redundant segments cleaned",
			path: "/project/src/../src/./a.ts",
			want: "/project/src/a.ts",
		},
		{
			name: "trailing slash removed",
			path: "/project/src/",
			want: "/project/src",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := domain.NewResourceID(tt.path)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestResourceID_InternedEquality(t *testing.T) {
	a := domain.NewResourceID("/project/a.ts")
	b := domain.NewResourceID("/project/./a.ts")

	assert.Equal(t, a, b)
	assert.Equal(t, a.Handle(), b.Handle())
}

func TestResourceID_Ext(t *testing.T) {
	assert.Equal(t, ".ts", domain.NewResourceID("/p/a.ts").Ext())
	assert.Equal(t, ".css", domain.NewResourceID("/p/A.CSS").Ext())
	assert.Equal(t, "", domain.NewResourceID("/p/Makefile").Ext())
}

func TestResourceID_TextRoundTrip(t *testing.T) {
	id := domain.NewResourceID("/project/a.ts")

	text, err := id.MarshalText()
	require.NoError(t, err)

	var decoded domain.ResourceID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, id, decoded)
}

func TestNewSourceClassifier(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		path       string
		want       bool
	}{
		{
			name: "default treats ts as primary",
			path: "/p/a.ts",
			want: true,
		},
		{
			name: "default treats css as resource",
			path: "/p/a.css",
			want: false,
		},
		{
			name:       "custom extension set",
			extensions: []string{".go"},
			path:       "/p/main.go",
			want:       true,
		},
		{
			name:       "custom set excludes default",
			extensions: []string{".go"},
			path:       "/p/a.ts",
			want:       false,
		},
		{
			name: "case insensitive",
			path: "/p/A.TS",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isPrimary := domain.NewSourceClassifier(tt.extensions)
			assert.Equal(t, tt.want, isPrimary(domain.NewResourceID(tt.path)))
		})
	}
}
