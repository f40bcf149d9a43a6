package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"

	"slidedeck/internal/logger"
	"slidedeck/pkg/decktypes"
)

// CustomAPIKeyKey optionally holds the API key sent to a custom OpenAI-compatible endpoint.
const CustomAPIKeyKey = "CUSTOM_LLM_API_KEY"

// Base URL overrides, read through the configuration layers rather than the
// SDKs' own process environment lookups.
const (
	OpenAIBaseURLKey    = "OPENAI_BASE_URL"
	AnthropicBaseURLKey = "ANTHROPIC_BASE_URL"
	GoogleBaseURLKey    = "GOOGLE_GEMINI_BASE_URL"
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1/"
	defaultAnthropicBaseURL = "https://api.anthropic.com/"
	defaultGoogleBaseURL    = "https://generativelanguage.googleapis.com/"
)

// DefaultVerificationTimeout bounds a single verification call.
const DefaultVerificationTimeout = 10 * time.Second

// VerificationService checks that a resolved credential is accepted by its
// provider, using one inexpensive model-listing call.
type VerificationService struct {
	config     *ConfigurationService
	httpClient *http.Client
	timeout    time.Duration
}

// NewVerificationService creates a VerificationService. A nil httpClient uses
// a client that logs each request with credentials masked.
func NewVerificationService(config *ConfigurationService, httpClient *http.Client) *VerificationService {
	if httpClient == nil {
		httpClient = &http.Client{Transport: newProbeTransport(nil)}
	}
	return &VerificationService{
		config:     config,
		httpClient: httpClient,
		timeout:    DefaultVerificationTimeout,
	}
}

// Name returns the service name "verification" for registration.
func (v *VerificationService) Name() string {
	return "verification"
}

// Initialize validates the service dependencies.
func (v *VerificationService) Initialize() error {
	if v.config == nil {
		return fmt.Errorf("verification service requires a configuration service")
	}
	return nil
}

// SetTimeout changes the per-call timeout.
func (v *VerificationService) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		v.timeout = timeout
	}
}

// VerifyActive resolves the active provider and verifies its credential.
func (v *VerificationService) VerifyActive(ctx context.Context) (decktypes.Resolution, error) {
	resolution, value := v.config.ResolveWithValue()
	return resolution, v.Verify(ctx, resolution, value)
}

// Verify checks value against the provider named by the resolution's requirement.
func (v *VerificationService) Verify(ctx context.Context, resolution decktypes.Resolution, value string) error {
	requirement := resolution.Requirement
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", requirement.Key, ErrMissingCredential)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	logger.ServiceOperation(v.Name(), "verify", "provider", requirement.Provider)

	var err error
	switch requirement.Provider {
	case decktypes.ProviderOpenAI:
		err = v.verifyOpenAI(ctx, v.baseURL(OpenAIBaseURLKey, defaultOpenAIBaseURL), value)
	case decktypes.ProviderAnthropic:
		err = v.verifyAnthropic(ctx, value)
	case decktypes.ProviderGoogle:
		err = v.verifyGoogle(ctx, value)
	case decktypes.ProviderOllama:
		err = v.verifyHTTP(ctx, joinURL(value, "api/tags"))
	case decktypes.ProviderCustom:
		err = v.verifyOpenAI(ctx, value, v.config.GetConfigValue(CustomAPIKeyKey))
	default:
		err = fmt.Errorf("no verifier for provider %q", requirement.Provider)
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %v", requirement.DisplayName, ErrVerificationFailed, err)
	}
	return nil
}

// baseURL returns the configured override for key, or def.
func (v *VerificationService) baseURL(key, def string) string {
	if u := strings.TrimSpace(v.config.GetConfigValue(key)); u != "" {
		return u
	}
	return def
}

// verifyOpenAI lists models on the OpenAI API or an OpenAI-compatible endpoint.
// Organization and project headers the SDK picks up from the process
// environment are dropped; only the resolved key is sent.
func (v *VerificationService) verifyOpenAI(ctx context.Context, baseURL, apiKey string) error {
	client := openai.NewClient(
		option.WithBaseURL(withTrailingSlash(baseURL)),
		option.WithAPIKey(apiKey),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
		option.WithHTTPClient(v.httpClient),
		option.WithMaxRetries(0),
	)
	_, err := client.Models.List(ctx)
	return err
}

// verifyAnthropic lists models with the x-api-key header only; an
// ANTHROPIC_AUTH_TOKEN bearer header from the process environment is dropped.
func (v *VerificationService) verifyAnthropic(ctx context.Context, apiKey string) error {
	client := anthropic.NewClient(
		anthropicoption.WithBaseURL(withTrailingSlash(v.baseURL(AnthropicBaseURLKey, defaultAnthropicBaseURL))),
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithHeaderDel("Authorization"),
		anthropicoption.WithHTTPClient(v.httpClient),
		anthropicoption.WithMaxRetries(0),
	)
	_, err := client.Models.List(ctx, anthropic.ModelListParams{})
	return err
}

func (v *VerificationService) verifyGoogle(ctx context.Context, apiKey string) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: v.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: withTrailingSlash(v.baseURL(GoogleBaseURLKey, defaultGoogleBaseURL)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	_, err = client.Models.List(ctx, &genai.ListModelsConfig{PageSize: 1})
	return err
}

// verifyHTTP requires a 2xx answer to a GET on url.
func (v *VerificationService) verifyHTTP(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s returned %s", url, resp.Status)
	}
	return nil
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

func joinURL(base, path string) string {
	return withTrailingSlash(strings.TrimSpace(base)) + strings.TrimPrefix(path, "/")
}
