package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestedTitles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "bullet list with reasons",
			text: "- Inception: rüya içinde rüya seven biri için ideal\n- The Matrix: bilim kurgu klasiği",
			want: []string{"Inception", "The Matrix"},
		},
		{
			name: "numbered list",
			text: "1. Interstellar: uzay ve dram\n2) Dune: epik bilim kurgu",
			want: []string{"Interstellar", "Dune"},
		},
		{
			name: "markdown bold titles",
			text: "**Breaking Bad**: gerilim dolu\n*Dark*: zaman yolculuğu",
			want: []string{"Breaking Bad", "Dark"},
		},
		{
			name: "line without colon keeps whole line",
			text: "Inception\nThe Matrix",
			want: []string{"Inception", "The Matrix"},
		},
		{
			name: "blank lines dropped",
			text: "\n\n- Inception: iyi film\n\n",
			want: []string{"Inception"},
		},
		{
			name: "titles starting with digits",
			text: "1917: bir savaş filmi\n- 300 Spartans: antik savaş\n2. 2012: kıyamet filmi",
			want: []string{"1917", "300 Spartans", "2012"},
		},
		{
			name: "quoted titles",
			text: "- \"Inception\": harika\n",
			want: []string{"Inception"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSuggestedTitles(tt.text))
		})
	}
}

func TestParseSuggestedLine(t *testing.T) {
	assert.Equal(t, "Inception", parseSuggestedLine("  • Inception: çünkü ..."))
	assert.Equal(t, "The Office", parseSuggestedLine("3. The Office"))
	assert.Equal(t, "", parseSuggestedLine("   "))
	assert.Equal(t, "", parseSuggestedLine("- : gerekçe ama başlık yok"))
}
