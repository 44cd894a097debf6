package mcp_test

import (
	"testing"

	"github.com/fwojciec/context7"
	"github.com/fwojciec/context7/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_JSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes structured content", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{
			StructuredContent: map[string]any{
				"candidates": []any{
					map[string]any{
						"context7CompatibleLibraryID": "/colinhacks/zod",
						"title":                       "Zod",
						"totalSnippets":               float64(512),
						"trustScore":                  9.6,
					},
				},
			},
		}

		var payload struct {
			Candidates []context7.LibraryCandidate `json:"candidates"`
		}
		require.True(t, r.JSON(&payload))
		require.Len(t, payload.Candidates, 1)
		assert.Equal(t, "/colinhacks/zod", payload.Candidates[0].ID)
		assert.Equal(t, "Zod", payload.Candidates[0].Title)
		assert.Equal(t, 512, payload.Candidates[0].TotalSnippets)
		assert.InDelta(t, 9.6, payload.Candidates[0].TrustScore, 0.001)
	})

	t.Run("decodes JSON object text", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{Content: []mcp.Content{{
			Type: "text",
			Text: ` {"candidates":[{"context7CompatibleLibraryID":"/facebook/react"}]} `,
		}}}

		var payload struct {
			Candidates []context7.LibraryCandidate `json:"candidates"`
		}
		require.True(t, r.JSON(&payload))
		assert.Equal(t, "/facebook/react", payload.Candidates[0].ID)
	})

	t.Run("reports false for prose", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{Content: []mcp.Content{{Type: "text", Text: "Available Libraries:"}}}

		var payload map[string]any
		assert.False(t, r.JSON(&payload))
	})

	t.Run("reports false without content", func(t *testing.T) {
		t.Parallel()

		var payload map[string]any
		assert.False(t, (&mcp.Result{}).JSON(&payload))
	})
}

func TestResult_Text(t *testing.T) {
	t.Parallel()

	t.Run("joins text items", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{Content: []mcp.Content{
			{Type: "text", Text: "first"},
			{Type: "image", Text: "ignored"},
			{Type: "text", Text: "second"},
		}}

		text, ok := r.Text()
		require.True(t, ok)
		assert.Equal(t, "first\nsecond", text)
	})

	t.Run("reports absent without text items", func(t *testing.T) {
		t.Parallel()

		_, ok := (&mcp.Result{}).Text()
		assert.False(t, ok)
	})
}

func TestResult_Markdown(t *testing.T) {
	t.Parallel()

	t.Run("returns markdown text items", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{Content: []mcp.Content{
			{Type: "text", Text: "plain"},
			{Type: "text", Text: "# Title", MimeType: "text/markdown; charset=utf-8"},
		}}

		md, ok := r.Markdown()
		require.True(t, ok)
		assert.Equal(t, "# Title", md)
	})

	t.Run("returns embedded markdown resources", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{Content: []mcp.Content{{
			Type:     "resource",
			Resource: &mcp.ResourceContent{URI: "context7://docs", MimeType: "text/markdown", Text: "## Usage"},
		}}}

		md, ok := r.Markdown()
		require.True(t, ok)
		assert.Equal(t, "## Usage", md)
	})

	t.Run("reports absent for plain text", func(t *testing.T) {
		t.Parallel()

		r := &mcp.Result{Content: []mcp.Content{{Type: "text", Text: "# looks like markdown"}}}

		_, ok := r.Markdown()
		assert.False(t, ok)
	})
}

func TestResult_ExtractLibraryID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []any
	}{
		{
			name: "non-numeric trust score",
			candidates: []any{
				map[string]any{"context7CompatibleLibraryID": "/a/b", "trustScore": "high"},
			},
		},
		{
			name: "non-object element first",
			candidates: []any{
				"garbage",
				map[string]any{"context7CompatibleLibraryID": "/a/b"},
			},
		},
		{
			name: "versions as object",
			candidates: []any{
				map[string]any{"context7CompatibleLibraryID": "/a/b", "versions": map[string]any{"v1": float64(1)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &mcp.Result{StructuredContent: map[string]any{"candidates": tt.candidates}}

			id, ok := context7.ExtractLibraryID(r)

			require.True(t, ok)
			assert.Equal(t, "/a/b", id)
			candidates := context7.ExtractCandidates(r)
			require.Len(t, candidates, 1)
			assert.Equal(t, "/a/b", candidates[0].ID)
		})
	}
}
