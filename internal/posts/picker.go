// Package posts chooses the text of the test post.
package posts

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/brizzai/linkedin-connector/internal/config"
	"github.com/brizzai/linkedin-connector/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultCandidates are used when no candidates file is configured
var DefaultCandidates = []string{
	"Excited to share my latest project on LinkedIn automation!",
	"Just testing my new LinkedIn integration tool. Ignore this post!",
	"Automation makes social media management so much easier. Testing my new tool!",
	"Working on a new LinkedIn posting automation tool. This is a test post.",
	"Testing, testing, 1-2-3! This is an automated post from my LinkedIn connector.",
}

// ErrNoCandidates is returned for a candidates file without posts
var ErrNoCandidates = errors.New("no candidate posts")

// CandidatesFile is the YAML layout of a candidates file
type CandidatesFile struct {
	Posts []string `yaml:"posts"`
}

// Picker returns the text to publish
type Picker struct {
	text       string
	candidates []string
	intN       func(n int) int
}

// NewPicker creates a Picker from cfg, loading the candidates file if set
func NewPicker(cfg *config.PostConfig) (*Picker, error) {
	candidates := DefaultCandidates
	if cfg.CandidatesFile != "" {
		loaded, err := LoadCandidates(cfg.CandidatesFile)
		if err != nil {
			return nil, err
		}
		candidates = loaded
	}

	return &Picker{
		text:       cfg.Text,
		candidates: candidates,
		intN:       rand.Intn,
	}, nil
}

// LoadCandidates reads candidate posts from a YAML file. Blank entries are
// skipped.
func LoadCandidates(filePath string) ([]string, error) {
	logger.Info("Loading candidate posts from file", zap.String("file", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	var file CandidatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse candidates file %s: %w", filePath, err)
	}

	candidates := make([]string, 0, len(file.Posts))
	for _, post := range file.Posts {
		if strings.TrimSpace(post) == "" {
			continue
		}
		candidates = append(candidates, post)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNoCandidates)
	}
	return candidates, nil
}

// Candidates returns the candidate set
func (p *Picker) Candidates() []string {
	return p.candidates
}

// Pick returns the configured text, or a random candidate
func (p *Picker) Pick() string {
	if p.text != "" {
		return p.text
	}
	return p.candidates[p.intN(len(p.candidates))]
}

// Module provides the post picker
var Module = fx.Options(
	fx.Provide(NewPicker),
)
