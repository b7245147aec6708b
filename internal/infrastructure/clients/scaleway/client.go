package scaleway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/providers"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultBaseURL = "https://api.scaleway.ai/v1"

// Client implements providers.TextGenerator against the Scaleway
// OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
}

// NewClient creates a new Scaleway generation client.
func NewClient(cfg *config.ScalewayConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("scaleway api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "qwen/qwen3-235b-a22b-instruct-2507:awq"
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limiter := newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst)

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: limiter,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatEnvelope struct {
	Choices []chatChoice `json:"choices"`
}

// Generate produces a completion for the request.
func (c *Client) Generate(ctx context.Context, req providers.GenerationRequest) (string, error) {
	if strings.TrimSpace(req.User) == "" {
		return "", errors.New("user prompt is required")
	}

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordScalewayMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordScalewayRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		recordScalewayMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordScalewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", fmt.Errorf("scaleway request failed with status %d", resp.StatusCode)
	}

	var envelope chatEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordScalewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(envelope.Choices) == 0 {
		recordScalewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing choices"))
		return "", errors.New("scaleway response missing choices")
	}

	text := strings.TrimSpace(envelope.Choices[0].Message.Content)
	if text == "" {
		recordScalewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("empty completion"))
		return "", errors.New("scaleway response missing completion text")
	}

	// Clean Markdown code blocks if present
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	recordScalewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type scalewayMetricsSet struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var scalewayMetricsInit = false
var scalewayMetrics scalewayMetricsSet

func ensureScalewayMetrics() {
	if scalewayMetricsInit {
		return
	}
	meter := otel.Meter("github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/scaleway")

	requestCount, err := meter.Int64Counter(
		"ai.scaleway.request.count",
		metric.WithDescription("Number of Scaleway generation requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.scaleway.request.duration",
		metric.WithDescription("Scaleway request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.scaleway.request.errors",
		metric.WithDescription("Number of Scaleway request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.scaleway.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the Scaleway rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	scalewayMetrics = scalewayMetricsSet{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	scalewayMetricsInit = true
}

func recordScalewayMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureScalewayMetrics()
	if !scalewayMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "scaleway"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	scalewayMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	scalewayMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		scalewayMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordScalewayRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureScalewayMetrics()
	if !scalewayMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "scaleway"),
		attribute.String("ai.model", model),
	}
	scalewayMetrics.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
