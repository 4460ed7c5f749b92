package posts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPicker_PickDefault(t *testing.T) {
	p, err := NewPicker(&config.PostConfig{})
	require.NoError(t, err)

	assert.Equal(t, DefaultCandidates, p.Candidates())
	for i := 0; i < 20; i++ {
		assert.Contains(t, DefaultCandidates, p.Pick())
	}
}

func TestPicker_PickUsesIndex(t *testing.T) {
	p, err := NewPicker(&config.PostConfig{})
	require.NoError(t, err)
	p.intN = func(n int) int { return n - 1 }

	assert.Equal(t, DefaultCandidates[len(DefaultCandidates)-1], p.Pick())
}

func TestPicker_FixedText(t *testing.T) {
	p, err := NewPicker(&config.PostConfig{Text: "Hello LinkedIn"})
	require.NoError(t, err)

	assert.Equal(t, "Hello LinkedIn", p.Pick())
}

func TestLoadCandidates(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr error
	}{
		{
			name:    "posts",
			content: "posts:\n  - first\n  - \"\"\n  - second\n",
			want:    []string{"first", "second"},
		},
		{
			name:    "empty list",
			content: "posts: []\n",
			wantErr: ErrNoCandidates,
		},
		{
			name:    "only blanks",
			content: "posts:\n  - \"  \"\n",
			wantErr: ErrNoCandidates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadCandidates(writeFile(t, tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCandidates_Errors(t *testing.T) {
	_, err := LoadCandidates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadCandidates(writeFile(t, "posts: [unclosed\n"))
	assert.Error(t, err)
}

func TestNewPicker_CandidatesFile(t *testing.T) {
	p, err := NewPicker(&config.PostConfig{CandidatesFile: writeFile(t, "posts:\n  - only one\n")})
	require.NoError(t, err)
	assert.Equal(t, "only one", p.Pick())

	_, err = NewPicker(&config.PostConfig{CandidatesFile: writeFile(t, "posts: []\n")})
	assert.ErrorIs(t, err, ErrNoCandidates)
}
