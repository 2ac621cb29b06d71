package preset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"gopkg.in/yaml.v3"

	kexec "github.com/kindling-cli/kindling/internal/exec"
)

// Preset file names probed in a remote repository, in order.
var remotePresetFiles = []string{"kindling.json", "kindling.yaml", "kindling.yml"}

// fetchTimeout bounds one remote preset fetch.
const fetchTimeout = 10 * time.Second

// GitHubLoader loads presets from GitHub repositories, either by reading
// the preset file through the contents API or by shallow-cloning the
// whole repository.
type GitHubLoader struct {
	client *github.Client
	exec   *kexec.Executor
}

// NewGitHubLoader creates a loader. GITHUB_TOKEN is used when present so
// private preset repositories work.
func NewGitHubLoader() *GitHubLoader {
	var client *github.Client
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = github.NewTokenClient(context.Background(), token)
	} else {
		client = github.NewClient(nil)
	}

	return &GitHubLoader{
		client: client,
		exec:   kexec.New(nil),
	}
}

// Load fetches the preset at ref ("owner/repo"). With clone set the
// repository is shallow-cloned via git, which supports presets whose
// repository carries more than the config file; otherwise only the
// preset file is downloaded.
func (l *GitHubLoader) Load(ctx context.Context, ref string, clone bool) (*Preset, error) {
	owner, repo, ok := strings.Cut(ref, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("remote preset reference must be owner/repo, got %q", ref)
	}

	if clone {
		return l.loadViaClone(ctx, owner, repo)
	}
	return l.loadViaContents(ctx, owner, repo)
}

func (l *GitHubLoader) loadViaContents(ctx context.Context, owner, repo string) (*Preset, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var lastErr error
	for _, name := range remotePresetFiles {
		fileContent, _, _, err := l.client.Repositories.GetContents(ctx, owner, repo, name, nil)
		if err != nil {
			lastErr = err
			continue
		}
		if fileContent == nil {
			lastErr = fmt.Errorf("%s is not a file", name)
			continue
		}

		raw, err := fileContent.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return Parse([]byte(raw), name)
	}

	return nil, fmt.Errorf("no preset file (%s) in %s/%s: %w",
		strings.Join(remotePresetFiles, ", "), owner, repo, lastErr)
}

func (l *GitHubLoader) loadViaClone(ctx context.Context, owner, repo string) (*Preset, error) {
	tmpDir, err := os.MkdirTemp("", "kindling-preset-")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	url := fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
	if err := l.exec.Run(ctx, "git", "clone", "--depth", "1", url, tmpDir); err != nil {
		return nil, fmt.Errorf("cloning %s: %w", url, err)
	}

	for _, name := range remotePresetFiles {
		data, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			continue
		}
		return Parse(data, name)
	}

	return nil, fmt.Errorf("no preset file (%s) in cloned %s/%s",
		strings.Join(remotePresetFiles, ", "), owner, repo)
}

// Parse decodes preset bytes. The filename extension selects the codec.
func Parse(data []byte, filename string) (*Preset, error) {
	p := New()

	switch filepath.Ext(filename) {
	case ".json":
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filename, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format %q", filepath.Ext(filename))
	}

	return p, nil
}
