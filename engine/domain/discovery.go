package domain

import (
	"context"
	"errors"
	"net"
	"strconv"
)

var (
	ErrNoKubeConfig    = errors.New("kubeconfig path is required when not running in cluster")
	ErrNoClient        = errors.New("kubernetes client is not initialized")
	ErrNilQueryInput   = errors.New("query options must not be nil")
	ErrNoClassifierPod = errors.New("no running classifier pod found")
)

type PodState string

const (
	PodStateOnline  PodState = "online"
	PodStateOffline PodState = "offline"
	PodStateUnknown PodState = "unknown"
)

type LabelSelector struct {
	Key   string
	Value string
}

// ClassifierPod is a classifier replica found in the cluster.
type ClassifierPod struct {
	Name      string
	Namespace string
	NodeID    string
	Host      string
	Port      int
	State     PodState
}

func (p *ClassifierPod) BaseURL() string {
	return "http://" + net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

type QueryClassifierPodsOptions struct {
	K8SNamespace    []string
	ClassifierLabel LabelSelector
}

type ClassifierLocator interface {
	QueryClassifierPods(ctx context.Context, opt *QueryClassifierPodsOptions) ([]*ClassifierPod, error)
}
