package rest_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/service"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestGetParametersDefaults() {
	resp := rest.SuccessResponse[rest.ParametersResponse]{}
	_, rec := suite.sendV1Request(http.MethodGet, "/parameters", nil, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(domain.DefaultLoadParameters(), resp.Data.Parameters)
}

func (suite *HandlerTestSuite) TestUpdateParametersIsDebounced() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(req *domain.ClassifyRequest) bool {
		return req.Parameters.CPUPercent == 100 && req.Parameters.ProcessCount == 4
	})).Return(remoteResult(domain.LabelSafe, 92, 6, 2), nil).Once()
	// a slow runner may let an intermediate value through before the last update lands
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.Anything).
		Return(remoteResult(domain.LabelUnsafe, 20, 70, 10), nil).Maybe()

	for _, cpu := range []int{20, 60, 140} {
		resp := rest.SuccessResponse[rest.ParametersResponse]{}
		_, rec := suite.sendV1Request(http.MethodPut, "/parameters", rest.ParametersRequest{
			CPUPercent:   util.Ptr(cpu),
			ProcessCount: util.Ptr(4),
		}, &resp)
		suite.Require().Equal(http.StatusAccepted, rec.Code)
		suite.LessOrEqual(resp.Data.Parameters.CPUPercent, 100)
	}

	suite.Eventually(func() bool {
		latest, ok := suite.Handler.Svc.Latest(suite.Ctx)
		return ok && latest.Parameters.CPUPercent == 100
	}, 2*time.Second, 10*time.Millisecond)

	resp := rest.SuccessResponse[rest.SnapshotResponse]{}
	_, rec := suite.sendV1Request(http.MethodGet, "/verdict", nil, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(service.LabelSafeHigh, resp.Data.Verdict.DisplayLabel)
	suite.Equal(100, resp.Data.Parameters.CPUPercent)
	suite.Empty(resp.Data.Processes)
}

func (suite *HandlerTestSuite) TestUpdateParametersRejectsUnknownWorkload() {
	resp := rest.ErrorResponse{}
	_, rec := suite.sendV1Request(http.MethodPut, "/parameters", rest.ParametersRequest{WorkloadType: util.Ptr("gpu-bound")}, &resp)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid workload_type", resp.Error)
}

func (suite *HandlerTestSuite) TestClassifyRemote() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.Anything).
		Return(remoteResult(domain.LabelDeadlockProne, 2, 5, 93), nil).Once()

	resp := rest.SuccessResponse[rest.SnapshotResponse]{}
	_, rec := suite.sendV1Request(http.MethodPost, "/classify", rest.ParametersRequest{
		CPUPercent:    util.Ptr(95),
		MemoryPercent: util.Ptr(90),
		IOPercent:     util.Ptr(85),
		ProcessCount:  util.Ptr(6),
		WorkloadType:  util.Ptr("cpu-bound"),
	}, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(domain.SourceRemote, resp.Data.Classification.Source)
	suite.Equal(service.LabelDeadlockVeryHigh, resp.Data.Verdict.DisplayLabel)
	suite.Equal(domain.StateDeadlock, resp.Data.Verdict.State)
	suite.Equal("HIGH RISK", resp.Data.Verdict.Badge)
	suite.Len(resp.Data.Processes, 6)

	timeline := rest.SuccessResponse[rest.TimelineResponse]{}
	_, rec = suite.sendV1Request(http.MethodGet, "/timeline", nil, &timeline)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(resp.Data.Generation, timeline.Data.Generation)
	suite.Equal(domain.StateDeadlock, timeline.Data.Timeline.State)
	suite.Len(timeline.Data.Timeline.Order, 6)
	suite.Len(timeline.Data.Timeline.Events, 3)
}

func (suite *HandlerTestSuite) TestClassifyFallsBackWhenClassifierDown() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.Anything).
		Return(nil, errors.New("dial tcp 127.0.0.1:5000: connection refused")).Once()

	resp := rest.SuccessResponse[rest.SnapshotResponse]{}
	_, rec := suite.sendV1Request(http.MethodPost, "/classify", rest.ParametersRequest{
		CPUPercent:    util.Ptr(90),
		MemoryPercent: util.Ptr(90),
		IOPercent:     util.Ptr(90),
		ProcessCount:  util.Ptr(60),
	}, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(domain.SourceFallback, resp.Data.Classification.Source)
	suite.Equal(domain.LabelDeadlockProne, resp.Data.Classification.Label)
	suite.Equal(domain.RiskHigh, resp.Data.Verdict.RiskTier)
	suite.InDelta(100, resp.Data.Classification.Probabilities.Sum(), 0.01)
}

func (suite *HandlerTestSuite) TestClassifyWithoutBodyUsesCurrentParameters() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(req *domain.ClassifyRequest) bool {
		return req.Parameters == domain.DefaultLoadParameters()
	})).Return(remoteResult(domain.LabelUnsafe, 10, 80, 10), nil).Once()

	resp := rest.SuccessResponse[rest.SnapshotResponse]{}
	_, rec := suite.sendV1Request(http.MethodPost, "/classify", nil, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(service.LabelUnsafeHigh, resp.Data.Verdict.DisplayLabel)
}

func (suite *HandlerTestSuite) TestVerdictBeforeFirstCycle() {
	resp := rest.ErrorResponse{}
	_, rec := suite.sendV1Request(http.MethodGet, "/verdict", nil, &resp)
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.False(resp.Success)

	_, rec = suite.sendV1Request(http.MethodGet, "/timeline", nil, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestHistory() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.Anything).
		Return(remoteResult(domain.LabelSafe, 90, 8, 2), nil).Times(3)
	for i := 0; i < 3; i++ {
		_, rec := suite.sendV1Request(http.MethodPost, "/classify", rest.ParametersRequest{CPUPercent: util.Ptr(10 * i)}, nil)
		suite.Require().Equal(http.StatusOK, rec.Code)
	}

	resp := rest.SuccessResponse[rest.HistoryResponse]{}
	_, rec := suite.sendV1Request(http.MethodGet, "/history?limit=2", nil, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().Len(resp.Data.Snapshots, 2)
	suite.Greater(resp.Data.Snapshots[0].Generation, resp.Data.Snapshots[1].Generation)

	resp = rest.SuccessResponse[rest.HistoryResponse]{}
	_, rec = suite.sendV1Request(http.MethodGet, "/history?source=fallback", nil, &resp)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Empty(resp.Data.Snapshots)

	_, rec = suite.sendV1Request(http.MethodGet, "/history?limit=abc", nil, nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	_, rec = suite.sendV1Request(http.MethodGet, "/history?source=cache", nil, nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}
