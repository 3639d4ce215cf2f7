package service

import (
	"context"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/domain"
	enginedomain "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	engineservice "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/service"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
)

func NewService(rng enginedomain.RandomSource) Service {
	return Service{rng: rng}
}

// Service answers prediction requests with the load heuristic, standing in for the trained model.
type Service struct {
	rng enginedomain.RandomSource
}

func (svc Service) Predict(ctx context.Context, input *domain.PredictionInput) (*domain.Prediction, error) {
	if len(input.Processes) > 0 && len(input.Processes) != input.NumProcesses {
		logger.Logger(ctx).Debug().Msgf("num_processes %d does not match %d process samples", input.NumProcesses, len(input.Processes))
	}
	result := engineservice.ClassifyFallback(
		util.Clamp(input.CPUPercent, 0, 100),
		util.Clamp(input.MemoryPercent, 0, 100),
		util.Clamp(input.IOPercent, 0, 100),
		max(input.NumProcesses, 0),
		svc.rng,
	)
	logger.Logger(ctx).Debug().Msgf("predicted %s with confidence %.1f", result.Label, result.Confidence)
	return &domain.Prediction{
		Label:         result.Label,
		Probabilities: result.Probabilities,
		Confidence:    util.Round(result.Confidence, 2),
	}, nil
}
