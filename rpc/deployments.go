package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/adil14788/Epic-game/state"
)

// DeploymentLister is the read side of the deployment store.
type DeploymentLister interface {
	ListDeployments(network string) ([]*state.Deployment, error)
}

// handleDeployments serves GET /deployments?network=<name>.
func handleDeployments(store DeploymentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "GET only", http.StatusMethodNotAllowed)
			return
		}

		list, err := store.ListDeployments(r.URL.Query().Get("network"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []*state.Deployment{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"deployments": list,
		})
	}
}
