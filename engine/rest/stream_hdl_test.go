package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/rest"
	"github.com/stretchr/testify/mock"
)

type streamFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (suite *HandlerTestSuite) dialStream() (*websocket.Conn, func()) {
	srv := httptest.NewServer(suite.Engine)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err, "Failed to dial stream")
	suite.Equal(http.StatusSwitchingProtocols, resp.StatusCode)
	return conn, func() {
		_ = conn.Close()
		srv.Close()
	}
}

func (suite *HandlerTestSuite) readFrame(conn *websocket.Conn) streamFrame {
	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var frame streamFrame
	suite.Require().NoError(conn.ReadJSON(&frame))
	return frame
}

// readUntil skips frames until one of the wanted type arrives.
func (suite *HandlerTestSuite) readUntil(conn *websocket.Conn, want string) streamFrame {
	for i := 0; i < 200; i++ {
		frame := suite.readFrame(conn)
		if frame.Type == want {
			return frame
		}
	}
	suite.FailNow("frame never arrived", want)
	return streamFrame{}
}

func (suite *HandlerTestSuite) TestStreamPushesCycle() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.Anything).
		Return(remoteResult(domain.LabelUnsafe, 15, 80, 5), nil).Once()

	conn, closeFn := suite.dialStream()
	defer closeFn()

	suite.Equal(rest.MessageConnected, suite.readFrame(conn).Type)
	// no cycle yet, only the playback state is replayed
	suite.Equal(string(domain.EventPlayback), suite.readFrame(conn).Type)

	snapshot, err := suite.Handler.Svc.RunCycle(suite.Ctx, domain.DefaultLoadParameters())
	suite.Require().NoError(err)

	frame := suite.readUntil(conn, string(domain.EventVerdict))
	var ev domain.RenderEvent
	suite.Require().NoError(json.Unmarshal(frame.Data, &ev))
	suite.Equal(snapshot.Generation, ev.Generation)
	suite.Require().NotNil(ev.Verdict)
	suite.Equal(snapshot.Verdict.DisplayLabel, ev.Verdict.DisplayLabel)

	frame = suite.readUntil(conn, string(domain.EventTimeline))
	suite.Require().NoError(json.Unmarshal(frame.Data, &ev))
	suite.Require().NotNil(ev.Timeline)
	suite.Equal(domain.StateUnsafe, ev.Timeline.State)
}

func (suite *HandlerTestSuite) TestStreamReplaysLatestOnConnect() {
	suite.MockClassifier.EXPECT().Classify(mock.Anything, mock.Anything).
		Return(remoteResult(domain.LabelSafe, 95, 4, 1), nil).Once()
	_, err := suite.Handler.Svc.RunCycle(suite.Ctx, domain.DefaultLoadParameters())
	suite.Require().NoError(err)

	conn, closeFn := suite.dialStream()
	defer closeFn()

	suite.Equal(rest.MessageConnected, suite.readFrame(conn).Type)
	want := []domain.RenderEventKind{domain.EventVerdict, domain.EventProbabilities, domain.EventTimeline, domain.EventPlayback}
	for _, kind := range want {
		suite.Equal(string(kind), suite.readFrame(conn).Type)
	}
}

func (suite *HandlerTestSuite) TestStreamSendsPlaybackFrames() {
	conn, closeFn := suite.dialStream()
	defer closeFn()
	suite.readUntil(conn, string(domain.EventPlayback))

	_, err := suite.Handler.Svc.SetPlaybackSpeed(suite.Ctx, 10)
	suite.Require().NoError(err)
	suite.Handler.Svc.Play(suite.Ctx)

	var state domain.PlaybackState
	frame := suite.readUntil(conn, rest.MessageFrame)
	suite.Require().NoError(json.Unmarshal(frame.Data, &state))
	suite.Equal(10, state.Speed)

	// at 10x the sweep is over in two seconds and ends on a stopped frame
	for state.Playing {
		frame = suite.readUntil(conn, rest.MessageFrame)
		suite.Require().NoError(json.Unmarshal(frame.Data, &state))
	}
	suite.Equal(1.0, state.Position)
}

func (suite *HandlerTestSuite) TestStreamPingPong() {
	conn, closeFn := suite.dialStream()
	defer closeFn()
	suite.readUntil(conn, string(domain.EventPlayback))

	suite.Require().NoError(conn.WriteJSON(rest.StreamMessage{Type: "ping", Data: "hello"}))
	frame := suite.readUntil(conn, rest.MessagePong)
	suite.JSONEq(`"hello"`, string(frame.Data))
}
