package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"slidedeck/internal/logger"
	"slidedeck/pkg/decktypes"
)

// missingKeyWarning is shown when the active provider has no credential.
const missingKeyWarning = `# LLM configuration required

Please configure your LLM settings to enable template creation via AI.

This feature requires a valid LLM configuration. Configure your API key and
settings in the ` + "`.env`" + ` file or via the settings page.
`

// MarkdownService renders markdown for terminal output using Glamour.
type MarkdownService struct {
	initialized bool
	style       string
	wordWrap    int
	renderer    *glamour.TermRenderer
}

// NewMarkdownService creates a MarkdownService. An empty style selects
// terminal auto-detection.
func NewMarkdownService(style string) *MarkdownService {
	return &MarkdownService{
		initialized: false,
		style:       style,
		wordWrap:    80,
	}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize creates the terminal renderer.
func (m *MarkdownService) Initialize() error {
	styleOption := glamour.WithAutoStyle()
	if m.style != "" && m.style != "auto" {
		styleOption = glamour.WithStandardStyle(m.style)
	}

	renderer, err := glamour.NewTermRenderer(
		styleOption,
		glamour.WithWordWrap(m.wordWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	m.renderer = renderer
	m.initialized = true

	logger.Debug("MarkdownService initialized", "style", m.style)
	return nil
}

// Render renders markdown content to terminal output.
func (m *MarkdownService) Render(markdown string) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown: %w", ErrServiceNotInitialized)
	}

	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return rendered, nil
}

// MissingKeyMarkdown returns the warning shown when no credential is
// configured, naming the key the active provider needs.
func MissingKeyMarkdown(resolution decktypes.Resolution) string {
	var b strings.Builder
	b.WriteString(missingKeyWarning)
	fmt.Fprintf(&b, "\nThe active provider is **%s**, which reads `%s`.\n",
		resolution.Requirement.DisplayName, resolution.Requirement.Key)
	if resolution.Provider == decktypes.ProviderDefault && resolution.RequestedProvider != "" {
		fmt.Fprintf(&b, "\n`LLM=%s` is not a supported provider; the OpenAI key is checked instead.\n",
			resolution.RequestedProvider)
	}
	return b.String()
}

// RenderMissingKeyWarning renders the missing credential warning.
func (m *MarkdownService) RenderMissingKeyWarning(resolution decktypes.Resolution) (string, error) {
	return m.Render(MissingKeyMarkdown(resolution))
}
