package client

import (
	"context"
	"net/http"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/pkg/errors"
)

// NewDiscoveredClassifierClient resolves the classifier pod on every call so
// replica restarts are picked up without reconfiguring the engine.
func NewDiscoveredClassifierClient(cfg config.ClassifierClient, locator domain.ClassifierLocator) domain.ClassifierAdapter {
	return &DiscoveredClassifierClient{
		Client:  &http.Client{Timeout: cfg.Timeout()},
		locator: locator,
		query: &domain.QueryClassifierPodsOptions{
			K8SNamespace: cfg.Discovery.Namespaces(),
			ClassifierLabel: domain.LabelSelector{
				Key:   cfg.Discovery.LabelKey,
				Value: cfg.Discovery.LabelValue,
			},
		},
	}
}

type DiscoveredClassifierClient struct {
	*http.Client
	locator domain.ClassifierLocator
	query   *domain.QueryClassifierPodsOptions
}

func (c DiscoveredClassifierClient) Classify(ctx context.Context, req *domain.ClassifyRequest) (*domain.ClassificationResult, error) {
	baseURL, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return ClassifierClient{Client: c.Client, baseURL: baseURL}.Classify(ctx, req)
}

func (c DiscoveredClassifierClient) resolve(ctx context.Context) (string, error) {
	pods, err := c.locator.QueryClassifierPods(ctx, c.query)
	if err != nil {
		return "", errors.WithMessage(err, "discover classifier pods")
	}
	for _, pod := range pods {
		if pod.State != domain.PodStateOnline || pod.Host == "" || pod.Port == 0 {
			continue
		}
		logger.Logger(ctx).Debug().Msgf("classifier resolved to pod %s/%s", pod.Namespace, pod.Name)
		return pod.BaseURL(), nil
	}
	return "", domain.ErrNoClassifierPod
}
