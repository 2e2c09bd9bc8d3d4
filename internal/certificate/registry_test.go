package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	t.Run("known template", func(t *testing.T) {
		tpl, err := registry.Get("classic", 0)
		require.NoError(t, err)
		assert.Equal(t, "classic", tpl.ID)
		assert.NotEmpty(t, tpl.Fields)
	})

	t.Run("explicit supported version", func(t *testing.T) {
		_, err := registry.Get("classic", 2)
		assert.NoError(t, err)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := registry.Get("vintage", 0)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := registry.Get("formal", 7)
		assert.ErrorIs(t, err, ErrUnsupportedTemplateVersion)
	})
}

func TestRegistryRecommend(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name       string
		eventType  string
		preference string
		want       string
	}{
		{"workshop", "workshop", "", "classic"},
		{"training", "Training", "", "classic"},
		{"seminar", "seminar", "", "formal"},
		{"conference", "conference", "", "formal"},
		{"competition", "competition", "", "modern"},
		{"hackathon", "hackathon", "", "modern"},
		{"unknown event type falls back", "guest lecture", "", "classic"},
		{"preference wins", "workshop", "modern", "modern"},
		{"unregistered preference ignored", "seminar", "vintage", "formal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, registry.Recommend(tt.eventType, tt.preference))
		})
	}
}

func TestRendererProducesPDF(t *testing.T) {
	registry := NewRegistry()
	logger, _ := zap.NewDevelopment()
	renderer := NewRenderer(logger)

	tpl, err := registry.Get("classic", 0)
	require.NoError(t, err)

	data, mime, err := renderer.Render(tpl, map[string]string{
		"institution": "Test University",
		"participant": "A. Student",
		"title":       "Workshop on Go",
		"dates":       "10.02.2026 to 12.02.2026",
		"venue":       "Seminar Hall A",
		"mode":        "offline",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExpand(t *testing.T) {
	values := map[string]string{"venue": "Hall A", "mode": "offline"}

	assert.Equal(t, "Venue: Hall A (offline)", expand("Venue: {venue} ({mode})", values))
	assert.Equal(t, "Venue: Hall A ", expand("Venue: {venue} {unknown}", values))
	assert.Equal(t, "plain text", expand("plain text", values))
}

func TestSpaceOut(t *testing.T) {
	assert.Equal(t, "A B C", spaceOut("ABC", 1))
	assert.Equal(t, "A  B", spaceOut("AB", 2))
	assert.Equal(t, "X", spaceOut("X", 3))
}
