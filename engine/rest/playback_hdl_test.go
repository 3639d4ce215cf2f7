package rest_test

import (
	"net/http"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
)

func (suite *HandlerTestSuite) playback(method, path string, body any) (rest.SuccessResponse[rest.PlaybackResponse], int) {
	resp := rest.SuccessResponse[rest.PlaybackResponse]{}
	_, rec := suite.sendV1Request(method, path, body, &resp)
	return resp, rec.Code
}

func (suite *HandlerTestSuite) TestPlaybackLifecycle() {
	resp, code := suite.playback(http.MethodGet, "/playback", nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.False(resp.Data.Playback.Playing)
	suite.Equal(5, resp.Data.Playback.Speed)

	resp, code = suite.playback(http.MethodPut, "/playback/speed", rest.SpeedRequest{Speed: 10})
	suite.Require().Equal(http.StatusOK, code)
	suite.Equal(10, resp.Data.Playback.Speed)

	resp, code = suite.playback(http.MethodPost, "/playback/play", nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.True(resp.Data.Playback.Playing)

	time.Sleep(50 * time.Millisecond)
	resp, code = suite.playback(http.MethodPost, "/playback/pause", nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.False(resp.Data.Playback.Playing)
	suite.Greater(resp.Data.Playback.Position, 0.0)
	paused := resp.Data.Playback.Position

	time.Sleep(30 * time.Millisecond)
	resp, _ = suite.playback(http.MethodGet, "/playback", nil)
	suite.Equal(paused, resp.Data.Playback.Position)

	resp, code = suite.playback(http.MethodPost, "/playback/reset", nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.Equal(0.0, resp.Data.Playback.Position)
	suite.False(resp.Data.Playback.Playing)
}

func (suite *HandlerTestSuite) TestPlaybackSpeedOutOfRange() {
	for _, speed := range []int{0, -1, 11} {
		resp := rest.ErrorResponse{}
		_, rec := suite.sendV1Request(http.MethodPut, "/playback/speed", rest.SpeedRequest{Speed: speed}, &resp)
		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Equal("Invalid playback speed", resp.Error)
	}
	resp, _ := suite.playback(http.MethodGet, "/playback", nil)
	suite.Equal(5, resp.Data.Playback.Speed)
}

func (suite *HandlerTestSuite) TestPlaybackSeek() {
	resp, code := suite.playback(http.MethodPut, "/playback/seek", rest.SeekRequest{Position: util.Ptr(0.25)})
	suite.Require().Equal(http.StatusOK, code)
	suite.Equal(0.25, resp.Data.Playback.Position)
	suite.InDelta(5.0, resp.Data.Playback.OffsetSeconds, 1e-9)

	resp, _ = suite.playback(http.MethodPut, "/playback/seek", rest.SeekRequest{Position: util.Ptr(7.0)})
	suite.Equal(1.0, resp.Data.Playback.Position)

	errResp := rest.ErrorResponse{}
	_, rec := suite.sendV1Request(http.MethodPut, "/playback/seek", map[string]any{}, &errResp)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Missing required field: position", errResp.Error)
}
