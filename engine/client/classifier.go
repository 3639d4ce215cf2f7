package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	classifierrest "github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/tracing"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
)

const predictPath = "/api/predict-realtime"

// NewClassifierClient returns the HTTP client, or an offline adapter when no base url is configured.
func NewClassifierClient(cfg config.ClassifierClient) domain.ClassifierAdapter {
	if cfg.BaseURL == "" {
		return offlineClassifier{}
	}
	return &ClassifierClient{
		Client:  &http.Client{Timeout: cfg.Timeout()},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

type ClassifierClient struct {
	*http.Client
	baseURL string
}

func (c ClassifierClient) Classify(ctx context.Context, req *domain.ClassifyRequest) (*domain.ClassificationResult, error) {
	ctx, span := tracing.StartSpan(ctx, "classifier.predict_realtime", trace.SpanKindClient)
	result, err := c.classify(ctx, req)
	if result != nil {
		span.SetString("label", string(result.Label)).SetFloat("confidence", result.Confidence)
	}
	span.End(err)
	return result, err
}

func (c ClassifierClient) classify(ctx context.Context, req *domain.ClassifyRequest) (*domain.ClassificationResult, error) {
	logger.Logger(ctx).Debug().Msgf("Sending %d processes to classifier %s", len(req.Processes), c.baseURL)

	jsonBody, err := json.Marshal(newPredictRequest(req))
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + predictPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, errors.WithMessagef(err, "call classifier %s", endpoint)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("classifier %s returned non-OK status: %s", endpoint, resp.Status)
	}

	var payload classifierrest.PredictRealtimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.WithMessage(err, "decode classifier response")
	}
	return toResult(payload)
}

func newPredictRequest(req *domain.ClassifyRequest) classifierrest.PredictRealtimeRequest {
	p := req.Parameters
	payload := classifierrest.PredictRealtimeRequest{
		CPUPercent:    util.Ptr(float64(p.CPUPercent)),
		MemoryPercent: util.Ptr(float64(p.MemoryPercent)),
		IOPercent:     util.Ptr(float64(p.IOPercent)),
		NumProcesses:  util.Ptr(p.ProcessCount),
		Processes:     make([]classifierrest.ProcessPayload, 0, len(req.Processes)),
	}
	for _, proc := range req.Processes {
		payload.Processes = append(payload.Processes, classifierrest.ProcessPayload{
			PID:          proc.PID,
			CPUUsage:     proc.CPUUsage,
			MemoryUsage:  proc.MemoryUsage,
			IOUsage:      proc.IOUsage,
			WorkloadType: string(proc.WorkloadType),
		})
	}
	return payload
}

// toResult validates the reply. Probabilities are renormalized to 100 and a
// missing confidence falls back to the largest probability.
func toResult(payload classifierrest.PredictRealtimeResponse) (*domain.ClassificationResult, error) {
	if payload.Error != "" {
		return nil, errors.WithMessage(domain.ErrClassifierReply, payload.Error)
	}
	label, err := domain.ParseLabel(string(payload.Prediction))
	if err != nil {
		return nil, err
	}
	probs := domain.ProbabilitiesFromMap(payload.Probabilities).Normalized()
	confidence := probs.Max()
	if payload.Confidence != nil {
		confidence = util.Clamp(*payload.Confidence, 0, 100)
	}
	return &domain.ClassificationResult{
		Label:         label,
		Probabilities: probs,
		Confidence:    confidence,
		Source:        domain.SourceRemote,
	}, nil
}

// ErrClassifierOffline is returned when the engine runs without a remote classifier.
var ErrClassifierOffline = errors.New("no classifier base url configured")

type offlineClassifier struct{}

func (offlineClassifier) Classify(ctx context.Context, req *domain.ClassifyRequest) (*domain.ClassificationResult, error) {
	return nil, ErrClassifierOffline
}
