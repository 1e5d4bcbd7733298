package kubeutil

import (
	"errors"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

var ErrNoCluster = errors.New("no cluster to connect")

// detect *rest.Config.
//
// It searches kubeconfig from
//
// - `~/.kube/config`
//
// - environmental variable `KUBECONFIG`
//
// - the argument `kubeconfig`
//
// When no files are found from above, it tries to use in-cluster config.
func RESTConfig(kubeconfig string) (*rest.Config, error) {
	path := ""

	// priority 1 (least): ~/.kube/config
	if home := homedir.HomeDir(); home != "" {
		path = filepath.Join(home, ".kube", "config")
	}

	// priority 2: envvar KUBECONFIG
	if k := os.Getenv("KUBECONFIG"); k != "" {
		path = k
	}

	// priority 3 (most): argument
	if kubeconfig != "" {
		path = kubeconfig
		if stat, err := os.Stat(path); err != nil {
			return nil, err
		} else if stat.IsDir() {
			return nil, errors.New("kubeconfig should be a file: " + path)
		}
	}

	if path != "" {
		stat, err := os.Stat(path)
		if os.IsNotExist(err) || (err == nil && stat.IsDir()) {
			path = ""
		}
	}

	if path != "" {
		return clientcmd.BuildConfigFromFlags("", path)
	}

	// fallback: try in-cluster
	conf, err := rest.InClusterConfig()
	if err != nil {
		return nil, errors.Join(ErrNoCluster, err)
	}
	return conf, nil
}
