package client

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discoveryCfg = config.ClassifierClient{
	TimeoutMS: 200,
	Discovery: config.DiscoveryConfig{Enabled: true, Namespace: "ml", LabelKey: "app", LabelValue: "risk-classifier"},
}

func TestDiscoveredClientCallsFirstOnlinePod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction":"SAFE","probabilities":{"SAFE":80,"UNSAFE":15,"DEADLOCK":5},"confidence":80}`))
	}))
	t.Cleanup(srv.Close)
	addr := srv.Listener.Addr().(*net.TCPAddr)

	locator := domain.NewMockClassifierLocator(t)
	locator.EXPECT().QueryClassifierPods(mock.Anything, mock.MatchedBy(func(opt *domain.QueryClassifierPodsOptions) bool {
		return opt.ClassifierLabel.Value == "risk-classifier" && len(opt.K8SNamespace) == 1 && opt.K8SNamespace[0] == "ml"
	})).Return([]*domain.ClassifierPod{
		{Name: "clf-0", Host: "10.255.255.1", Port: 5000, State: domain.PodStateOffline},
		{Name: "clf-1", Host: addr.IP.String(), Port: addr.Port, State: domain.PodStateOnline},
	}, nil).Once()

	c := NewDiscoveredClassifierClient(discoveryCfg, locator)
	res, err := c.Classify(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.LabelSafe, res.Label)
	assert.Equal(t, domain.SourceRemote, res.Source)
}

func TestDiscoveredClientWithoutOnlinePod(t *testing.T) {
	locator := domain.NewMockClassifierLocator(t)
	locator.EXPECT().QueryClassifierPods(mock.Anything, mock.Anything).Return([]*domain.ClassifierPod{
		{Name: "clf-0", Host: "10.0.0.1", Port: 5000, State: domain.PodStateUnknown},
		{Name: "clf-1", Host: "", Port: 5000, State: domain.PodStateOnline},
	}, nil).Once()

	_, err := NewDiscoveredClassifierClient(discoveryCfg, locator).Classify(context.Background(), testRequest())
	assert.ErrorIs(t, err, domain.ErrNoClassifierPod)
}

func TestDiscoveredClientLookupError(t *testing.T) {
	locator := domain.NewMockClassifierLocator(t)
	locator.EXPECT().QueryClassifierPods(mock.Anything, mock.Anything).Return(nil, domain.ErrNoClient).Once()

	_, err := NewDiscoveredClassifierClient(discoveryCfg, locator).Classify(context.Background(), testRequest())
	assert.ErrorIs(t, err, domain.ErrNoClient)
}
