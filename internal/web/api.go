package web

import (
	"net/http"

	"perfoverlay/internal/auth"
	"perfoverlay/internal/netx"
	"perfoverlay/internal/overlay"
)

// SnapshotResponse is the body of GET /api/snapshot
type SnapshotResponse struct {
	CPUUsage int    `json:"cpu_usage"`
	RAMUsage int    `json:"ram_usage"`
	GPUUsage int    `json:"gpu_usage"`
	CPUTemp  int    `json:"cpu_temp"`
	GPUTemp  int    `json:"gpu_temp"`
	Line     string `json:"line"`
}

// StartAPI registers the snapshot routes with the given mux
func StartAPI(mux *http.ServeMux, mirror *Mirror) {
	mux.HandleFunc("/api/snapshot", auth.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		handleSnapshot(w, r, mirror)
	}))
}

func handleSnapshot(w http.ResponseWriter, r *http.Request, mirror *Mirror) {
	if r.Method != http.MethodGet {
		netx.WriteMethodNotAllowed(w)
		return
	}

	snapshot, ok := mirror.Latest()
	if !ok {
		netx.WriteError(w, http.StatusServiceUnavailable, "No sample taken yet", nil)
		return
	}

	netx.WriteSuccess(w, "ok", SnapshotResponse{
		CPUUsage: snapshot.CPUUsage,
		RAMUsage: snapshot.RAMUsage,
		GPUUsage: snapshot.GPUUsage,
		CPUTemp:  snapshot.CPUTemp,
		GPUTemp:  snapshot.GPUTemp,
		Line:     overlay.PlainText(overlay.Compose(snapshot)),
	})
}
