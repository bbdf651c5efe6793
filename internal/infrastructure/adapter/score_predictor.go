package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
)

// ---------------------------------------------------------------------------
// Remote credit-score predictor
// ---------------------------------------------------------------------------

// PredictorConfig holds configuration for the remote model service client.
type PredictorConfig struct {
	// BaseURL of the model service, e.g. "http://ml-service:8000".
	BaseURL string
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// DefaultPredictorConfig returns defaults suitable for development.
func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		BaseURL: "http://localhost:8000",
		Timeout: 5 * time.Second,
	}
}

// ScorePredictorClient calls the remote model service over HTTP, guarded by
// a circuit breaker so a flapping model service fails fast instead of
// eating the full timeout on every assessment. All failures surface as
// errors; the caller's local fallback handles recovery.
type ScorePredictorClient struct {
	config  PredictorConfig
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewScorePredictorClient creates the HTTP client for the model service.
func NewScorePredictorClient(config PredictorConfig) *ScorePredictorClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "score-predictor",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &ScorePredictorClient{
		config:  config,
		httpc:   &http.Client{Timeout: config.Timeout},
		breaker: breaker,
	}
}

type predictResponse struct {
	CreditScore int `json:"credit_score"`
}

// PredictScore implements port.CreditScorePredictor.
func (c *ScorePredictorClient) PredictScore(ctx context.Context, req port.ScoreRequest) (int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal predict request: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doPredict(ctx, body)
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

func (c *ScorePredictorClient) doPredict(ctx context.Context, body []byte) (int, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+"/predict", bytes.NewReader(body),
	)
	if err != nil {
		return 0, fmt.Errorf("build predict request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("call model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("model service returned status %d", resp.StatusCode)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode predict response: %w", err)
	}
	return parsed.CreditScore, nil
}
