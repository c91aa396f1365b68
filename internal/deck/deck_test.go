package deck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDeck = `
format: "1.2"
title: Test
slides:
  - kind: title
    title: Hello
  - kind: strategy-list
    title: Plan
    bullets:
      - plain item
      - title: Rich
        text: item
`

func TestDefault(t *testing.T) {
	d := Default()
	require.Equal(t, 10, d.Len())
	assert.Equal(t, "Zomato", d.Subject)

	titles := d.Titles()
	assert.Equal(t, "zomato", titles[0])
	assert.Equal(t, "The Indian FoodTech Battlefield", titles[1])
	assert.Equal(t, "Group 9 Members", titles[9])

	origin := d.Slide(3)
	assert.Equal(t, KindChartBar, origin.Kind)
	require.NotNil(t, origin.Chart)
	require.Len(t, origin.Chart.Points, 4)
	assert.Equal(t, -2386.0, origin.Chart.Points[2].Value)

	blinkit := d.Slide(8)
	assert.Equal(t, "The Blinkit Bet", blinkit.Title)
	assert.Equal(t, []float64{10, 25, 45, 80, 130}, values(blinkit.Chart))

	team := d.Slide(9)
	require.Len(t, team.Bullets, 6)
	assert.Equal(t, Bullet{Title: "Aman Singh", Text: "Presenter"}, team.Bullets[0])
	assert.Equal(t, Bullet{Title: "Shruti Sinha"}, team.Bullets[1])
}

func values(c *Chart) []float64 {
	var out []float64
	for _, p := range c.Points {
		out = append(out, p.Value)
	}
	return out
}

func TestParse_AssignsIDsAndBulletShorthand(t *testing.T) {
	d, err := Parse([]byte(minimalDeck))
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())

	assert.Equal(t, "slide-1", d.Slides[0].ID)
	assert.Equal(t, "slide-2", d.Slides[1].ID)
	assert.Equal(t, []Bullet{{Title: "plain item"}, {Title: "Rich", Text: "item"}}, d.Slides[1].Bullets)
}

func TestSlide_Clamps(t *testing.T) {
	d, err := Parse([]byte(minimalDeck))
	require.NoError(t, err)
	assert.Equal(t, "Hello", d.Slide(-1).Title)
	assert.Equal(t, "Plan", d.Slide(99).Title)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"not yaml", "slides: [unclosed"},
		{"no slides", "format: \"1\"\ntitle: x\nslides: []\n"},
		{"missing format", "title: x\nslides:\n  - {kind: title, title: a}\n"},
		{"unknown kind", "format: \"1\"\ntitle: x\nslides:\n  - {kind: pie, title: a}\n"},
		{"unknown field", "format: \"1\"\ntitle: x\nslides:\n  - {kind: title, title: a, colour: red}\n"},
		{"chart without points", "format: \"1\"\ntitle: x\nslides:\n  - {kind: chart-bar, title: a, chart: {points: []}}\n"},
		{"non-numeric value", "format: \"1\"\ntitle: x\nslides:\n  - kind: chart-bar\n    title: a\n    chart: {points: [{name: q, value: lots}]}\n"},
		{"duplicate ids", "format: \"1\"\ntitle: x\nslides:\n  - {id: a, kind: title, title: a}\n  - {id: a, kind: title, title: b}\n"},
		{"bad semver", "format: \"one\"\ntitle: x\nslides:\n  - {kind: title, title: a}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "got %T: %v", err, err)
		})
	}
}

func TestParse_UnsupportedMajor(t *testing.T) {
	_, err := Parse([]byte("format: \"2.0.0\"\ntitle: x\nslides:\n  - {kind: title, title: a}\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestCheckFormat(t *testing.T) {
	for _, ok := range []string{"1", "1.0", "1.0.0", "v1.4.2"} {
		assert.NoError(t, checkFormat(ok), ok)
	}
	for _, bad := range []string{"", "0.9.0", "2", "latest"} {
		assert.Error(t, checkFormat(bad), bad)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(p, []byte(minimalDeck), 0o644))

	d, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "Test", d.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAssistantHint(t *testing.T) {
	assert.Contains(t, Default().AssistantHint(), "Swiggy rivalry")

	d, err := Parse([]byte(minimalDeck))
	require.NoError(t, err)
	assert.Equal(t, "Test", d.TopicName())
	assert.Equal(t, "Ask about Test's unit economics, margins, or competitive landscape...", d.AssistantHint())
}
