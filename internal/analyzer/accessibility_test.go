package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessibilityWellFormedPage(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html lang="en-GB"><body>
		<header>Site</header>
		<main>
			<img src="/a.png" alt="diagram">
			<a href="/docs">Documentation</a>
			<audio src="/talk.mp3"></audio>
			<p>Transcript of the talk.</p>
			<video src="/demo.mp4"></video>
			<p>Transcript of the demo.</p>
		</main>
	</body></html>`)

	got := extractAccessibility(doc)

	assert.True(t, got.SemanticLandmarks)
	assert.True(t, got.AltTextForImages)
	assert.True(t, got.DescriptiveLinkText)
	assert.Equal(t, "en-GB", got.LanguageAttribute)
	assert.True(t, got.AudioTranscripts)
	assert.True(t, got.VideoTranscripts)
	assert.InDelta(t, 4.5, got.EstimatedContrastRatio, 0.001)
}

func TestExtractAccessibilityFlagsProblems(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<div>
			<img src="/a.png" alt="ok">
			<img src="/b.png">
			<a href="/x">Read more</a>
			<a href="/y"><img src="/icon.png" alt=""></a>
			<video src="/demo.mp4"></video>
			<span>not a paragraph</span>
		</div>
	</body></html>`)

	got := extractAccessibility(doc)

	assert.False(t, got.SemanticLandmarks)
	assert.False(t, got.AltTextForImages)
	assert.False(t, got.DescriptiveLinkText)
	assert.Empty(t, got.LanguageAttribute)
	assert.True(t, got.AudioTranscripts, "no audio elements means the check passes")
	assert.False(t, got.VideoTranscripts)
}

func TestExtractAccessibilityVacuousChecks(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body><p>text only</p></body></html>`)

	got := extractAccessibility(doc)

	assert.True(t, got.AltTextForImages)
	assert.True(t, got.DescriptiveLinkText)
	assert.True(t, got.AudioTranscripts)
	assert.True(t, got.VideoTranscripts)
}

func TestFollowedByParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want bool
	}{
		{
			name: "immediate sibling",
			html: `<html><body><audio></audio><p>words</p></body></html>`,
			want: true,
		},
		{
			name: "separated by another element",
			html: `<html><body><audio></audio><div></div><p>words</p></body></html>`,
			want: false,
		},
		{
			name: "one of two missing",
			html: `<html><body><audio></audio><p>a</p><audio></audio><span>b</span></body></html>`,
			want: false,
		},
		{
			name: "last element on page",
			html: `<html><body><audio></audio></body></html>`,
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parseDoc(t, tt.html)
			assert.Equal(t, tt.want, followedByParagraph(doc, "audio"))
		})
	}
}
