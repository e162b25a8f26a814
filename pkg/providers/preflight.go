package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-resty/resty/v2"
	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"

	"github.com/otto8-ai/otto-admin/internal/logger"
)

const (
	StatusPass = "pass"
	StatusFail = "fail"
	StatusSkip = "skip"

	defaultProbeTimeout = 15 * time.Second
	voyageBaseURL       = "https://api.voyageai.com/v1"
)

// Check is the outcome of one preflight step
type Check struct {
	Name     string        `json:"name" yaml:"name"`
	Status   string        `json:"status" yaml:"status"`
	Message  string        `json:"message" yaml:"message"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Report collects the checks run for a provider
type Report struct {
	Provider string  `json:"provider" yaml:"provider"`
	Checks   []Check `json:"checks" yaml:"checks"`
}

// Passed reports whether no check failed
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return false
		}
	}
	return true
}

func (r *Report) add(name, status, msg string, d time.Duration) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Message: msg, Duration: d})
}

// Checker probes model providers with the credentials an admin configured
type Checker struct {
	http             *resty.Client
	timeout          time.Duration
	openAIBaseURL    string
	anthropicBaseURL string
	voyageBaseURL    string
}

// CheckerOption customizes a Checker
type CheckerOption func(*Checker)

// WithProbeTimeout bounds each connectivity probe
func WithProbeTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBaseURLs points the hosted-provider probes somewhere else. Empty values
// keep the SDK defaults.
func WithBaseURLs(openAI, anthropic, voyage string) CheckerOption {
	return func(c *Checker) {
		c.openAIBaseURL = openAI
		c.anthropicBaseURL = anthropic
		if voyage != "" {
			c.voyageBaseURL = voyage
		}
	}
}

// NewChecker creates a Checker
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		http:          resty.New(),
		timeout:       defaultProbeTimeout,
		voyageBaseURL: voyageBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check validates config (parameter name -> value) for p and, when complete,
// probes the provider with it.
func (c *Checker) Check(ctx context.Context, p ModelProvider, config map[string]string) Report {
	info := p.Info()
	report := Report{Provider: info.Name}

	if p == UnknownModelProvider {
		report.add("catalog", StatusFail, "provider is not in the catalog", 0)
		return report
	}

	var missing []string
	for _, f := range info.Fields {
		if strings.TrimSpace(config[f.EnvVar]) == "" {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		report.add("configuration", StatusFail, "missing "+strings.Join(missing, ", "), 0)
		report.add("connectivity", StatusSkip, "configuration incomplete", 0)
		return report
	}
	report.add("configuration", StatusPass, fmt.Sprintf("%d parameter(s) set", len(info.Fields)), 0)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	msg, err := c.probe(ctx, p, config)
	elapsed := time.Since(start)
	if err != nil {
		logger.Debug("Provider probe failed", "provider", info.ID, "error", err)
		report.add("connectivity", StatusFail, err.Error(), elapsed)
		return report
	}
	report.add("connectivity", StatusPass, msg, elapsed)
	return report
}

func (c *Checker) probe(ctx context.Context, p ModelProvider, config map[string]string) (string, error) {
	switch p {
	case OpenAI:
		return c.probeOpenAI(ctx, config["ACORN_OPENAI_MODEL_PROVIDER_API_KEY"])
	case Anthropic:
		return c.probeAnthropic(ctx, config["ACORN_ANTHROPIC_MODEL_PROVIDER_API_KEY"])
	case Voyage:
		return c.probeVoyage(ctx, config["ACORN_VOYAGE_MODEL_PROVIDER_API_KEY"])
	case Ollama:
		return c.probeHTTP(ctx, withScheme(config["ACORN_OLLAMA_MODEL_PROVIDER_HOST"]), "/api/tags")
	case Rubra:
		return c.probeHTTP(ctx, withScheme(config["ACORN_RUBRA_MODEL_PROVIDER_HOST"]), "/models")
	case AzureOpenAI:
		msg, err := c.probeReachable(ctx, config["ACORN_AZURE_OPENAI_MODEL_PROVIDER_ENDPOINT"])
		if err != nil {
			return "", err
		}
		return msg + " (credentials are verified by the platform)", nil
	default:
		return "", fmt.Errorf("no probe for %s", p.ID())
	}
}

func (c *Checker) probeOpenAI(ctx context.Context, apiKey string) (string, error) {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if c.openAIBaseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(c.openAIBaseURL))
	}
	client := openai.NewClient(opts...)

	page, err := client.Models.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}
	return fmt.Sprintf("%d model(s) available", len(page.Data)), nil
}

func (c *Checker) probeAnthropic(ctx context.Context, apiKey string) (string, error) {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
	}
	if c.anthropicBaseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(c.anthropicBaseURL))
	}
	client := anthropic.NewClient(opts...)

	page, err := client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}
	return fmt.Sprintf("%d model(s) available", len(page.Data)), nil
}

func (c *Checker) probeVoyage(ctx context.Context, apiKey string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		SetBody(map[string]any{"input": []string{"ping"}, "model": "voyage-3-lite"}).
		Post(strings.TrimRight(c.voyageBaseURL, "/") + "/embeddings")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("embeddings: %s", resp.Status())
	}
	return "embedding request accepted", nil
}

func (c *Checker) probeHTTP(ctx context.Context, base, path string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("GET %s: %s", path, resp.Status())
	}
	return fmt.Sprintf("%s responded %d", base, resp.StatusCode()), nil
}

func (c *Checker) probeReachable(ctx context.Context, endpoint string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return "", fmt.Errorf("endpoint returned %s", resp.Status())
	}
	return "endpoint reachable", nil
}

// withScheme adds http:// to bare host:port values such as 127.0.0.1:11434
func withScheme(host string) string {
	host = strings.TrimSpace(host)
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "http://" + host
}
