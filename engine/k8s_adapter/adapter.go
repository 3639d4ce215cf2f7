package k8sadapter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/cache"
	"k8s.io/client-go/tools/clientcmd"
)

var (
	_ domain.ClassifierLocator = (*Adapter)(nil)
)

// Adapter watches pods and answers classifier lookups from its cache,
// listing live until the informer has synced.
type Adapter struct {
	client         kubernetes.Interface
	podCache       map[string]apiv1.Pod
	podCacheMu     sync.RWMutex
	stopCh         chan struct{}
	startWatcher   sync.Once
	stopWatcher    sync.Once
	cacheHasSynced atomic.Bool
}

func NewAdapter(cfg config.DiscoveryConfig) (*Adapter, error) {
	restCfg, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}

	restCfg.Timeout = 10 * time.Second
	restCfg.QPS = 20
	restCfg.Burst = 50

	client, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes client: %w", err)
	}

	adapter := newAdapter(client)
	adapter.startPodWatcher()
	return adapter, nil
}

func newAdapter(client kubernetes.Interface) *Adapter {
	return &Adapter{
		client:   client,
		podCache: make(map[string]apiv1.Pod),
		stopCh:   make(chan struct{}),
	}
}

func buildConfig(cfg config.DiscoveryConfig) (*rest.Config, error) {
	if cfg.InCluster {
		restCfg, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("build in-cluster config: %w", err)
		}
		return restCfg, nil
	}

	if cfg.KubeConfigPath == "" {
		return nil, domain.ErrNoKubeConfig
	}

	restCfg, err := clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	if err != nil {
		return nil, fmt.Errorf("build kubeconfig from %s: %w", cfg.KubeConfigPath, err)
	}
	return restCfg, nil
}

func (a *Adapter) startPodWatcher() {
	a.startWatcher.Do(func() {
		informerFactory := informers.NewSharedInformerFactory(a.client, 0)
		podInformer := informerFactory.Core().V1().Pods().Informer()

		_, _ = podInformer.AddEventHandler(cache.ResourceEventHandlerFuncs{
			AddFunc: func(obj interface{}) {
				if pod, ok := obj.(*apiv1.Pod); ok {
					a.setPodCache(*pod)
				}
			},
			UpdateFunc: func(_, newObj interface{}) {
				if pod, ok := newObj.(*apiv1.Pod); ok {
					a.setPodCache(*pod)
				}
			},
			DeleteFunc: func(obj interface{}) {
				switch pod := obj.(type) {
				case *apiv1.Pod:
					logger.Logger(context.Background()).Debug().Msgf("pod deleted: %s/%s", pod.Namespace, pod.Name)
					a.deletePodCache(string(pod.UID))
				case cache.DeletedFinalStateUnknown:
					if p, ok := pod.Obj.(*apiv1.Pod); ok {
						a.deletePodCache(string(p.UID))
					}
				}
			},
		})

		informerFactory.Start(a.stopCh)

		synced := cache.WaitForCacheSync(a.stopCh, podInformer.HasSynced)
		a.cacheHasSynced.Store(synced)
		logger.Logger(context.Background()).Info().Msg("k8s pod watcher started")
	})
}

func (a *Adapter) StopPodWatcher() {
	a.stopWatcher.Do(func() {
		if a.stopCh != nil {
			close(a.stopCh)
		}
	})
}

// QueryClassifierPods returns matching pods sorted online first, then by namespace and name.
func (a *Adapter) QueryClassifierPods(ctx context.Context, opt *domain.QueryClassifierPodsOptions) ([]*domain.ClassifierPod, error) {
	if opt == nil {
		return nil, domain.ErrNilQueryInput
	}
	if a == nil || a.client == nil {
		return nil, domain.ErrNoClient
	}

	labelSelector := buildLabelSelector([]domain.LabelSelector{opt.ClassifierLabel})
	namespaces := opt.K8SNamespace
	if len(namespaces) == 0 {
		namespaces = []string{metav1.NamespaceAll}
	}

	pods, err := a.listPods(ctx, namespaces, labelSelector)
	if err != nil {
		return nil, err
	}
	results := make([]*domain.ClassifierPod, 0, len(pods))
	for _, pod := range pods {
		host := pod.Status.PodIP
		if host == "" {
			host = pod.Status.HostIP
		}
		results = append(results, &domain.ClassifierPod{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			NodeID:    pod.Spec.NodeName,
			Host:      host,
			Port:      firstContainerPort(pod),
			State:     mapPodState(pod.Status.Phase),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		oi, oj := results[i].State == domain.PodStateOnline, results[j].State == domain.PodStateOnline
		if oi != oj {
			return oi
		}
		if results[i].Namespace != results[j].Namespace {
			return results[i].Namespace < results[j].Namespace
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (a *Adapter) listPods(ctx context.Context, namespaces []string, labelSelector string) ([]apiv1.Pod, error) {
	selector, err := labels.Parse(labelSelector)
	if err != nil {
		return nil, fmt.Errorf("parse label selector %q: %w", labelSelector, err)
	}

	if a.cacheHasSynced.Load() {
		return a.podsFromCache(namespaces, selector), nil
	}

	return a.listPodsLive(ctx, namespaces, labelSelector)
}

func (a *Adapter) podsFromCache(namespaces []string, selector labels.Selector) []apiv1.Pod {
	nsAll := len(namespaces) == 0 || (len(namespaces) == 1 && namespaces[0] == metav1.NamespaceAll)
	nsSet := make(map[string]struct{}, len(namespaces))
	for _, ns := range namespaces {
		nsSet[ns] = struct{}{}
	}

	a.podCacheMu.RLock()
	defer a.podCacheMu.RUnlock()

	pods := make([]apiv1.Pod, 0, len(a.podCache))
	for _, pod := range a.podCache {
		if !nsAll {
			if _, ok := nsSet[pod.Namespace]; !ok {
				continue
			}
		}
		if !selector.Matches(labels.Set(pod.Labels)) {
			continue
		}
		pods = append(pods, pod)
	}
	return pods
}

func (a *Adapter) listPodsLive(ctx context.Context, namespaces []string, labelSelector string) ([]apiv1.Pod, error) {
	results := make([]apiv1.Pod, 0)
	for _, ns := range namespaces {
		pods, err := a.client.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{
			LabelSelector: labelSelector,
		})
		if err != nil {
			return nil, fmt.Errorf("list pods in namespace %s: %w", ns, err)
		}
		for _, pod := range pods.Items {
			a.setPodCache(pod)
			results = append(results, pod)
		}
	}
	return results, nil
}

func (a *Adapter) setPodCache(pod apiv1.Pod) {
	a.podCacheMu.Lock()
	a.podCache[string(pod.UID)] = pod
	a.podCacheMu.Unlock()
}

func (a *Adapter) deletePodCache(uid string) {
	a.podCacheMu.Lock()
	delete(a.podCache, uid)
	a.podCacheMu.Unlock()
}

func buildLabelSelector(selectors []domain.LabelSelector) string {
	parts := make([]string, 0, len(selectors))
	for _, selector := range selectors {
		if selector.Key == "" {
			continue
		}
		if selector.Value == "" {
			parts = append(parts, selector.Key)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", selector.Key, selector.Value))
	}
	return strings.Join(parts, ",")
}

func firstContainerPort(pod apiv1.Pod) int {
	for _, container := range pod.Spec.Containers {
		if len(container.Ports) == 0 {
			continue
		}
		return int(container.Ports[0].ContainerPort)
	}
	return 0
}

func mapPodState(phase apiv1.PodPhase) domain.PodState {
	switch phase {
	case apiv1.PodRunning:
		return domain.PodStateOnline
	case apiv1.PodPending:
		return domain.PodStateUnknown
	default:
		return domain.PodStateOffline
	}
}
