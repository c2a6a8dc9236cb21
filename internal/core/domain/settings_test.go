package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentOrder_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		order    DocumentOrder
		expected bool
	}{
		{name: "first_seen is valid", order: DocumentOrderFirstSeen, expected: true},
		{name: "alphabetical is valid", order: DocumentOrderAlphabetical, expected: true},
		{name: "empty string is invalid", order: DocumentOrder(""), expected: false},
		{name: "unknown order is invalid", order: DocumentOrder("random"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.order.IsValid())
		})
	}
}

func TestDocumentOrder_Description(t *testing.T) {
	assert.Equal(t, "Alphabetical", DocumentOrderAlphabetical.Description())
	assert.Equal(t, "Unknown", DocumentOrder("x").Description())
}

func TestMissingBioMode_IsValid(t *testing.T) {
	assert.True(t, MissingBioPlaceholder.IsValid())
	assert.True(t, MissingBioOmit.IsValid())
	assert.False(t, MissingBioMode("blank").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "RAW Data", s.Paths.RawData)
	assert.Equal(t, "Bios", s.Paths.Bios)
	assert.Equal(t, "lineage_document.tex", s.Paths.Output)
	assert.Empty(t, s.Paths.DataDir)
	assert.Equal(t, DocumentOrderFirstSeen, s.Document.Order)
	assert.Equal(t, MissingBioPlaceholder, s.Document.MissingBio)
	assert.False(t, s.Normalise.TitleCase)
	assert.Equal(t, "pdflatex", s.Toolchain.Typesetter)
	assert.Equal(t, "makeindex", s.Toolchain.Indexer)
	assert.Equal(t, 2*time.Minute, s.Toolchain.Timeout)
	assert.True(t, s.Report.Persist)
}
