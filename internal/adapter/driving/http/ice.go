package http

import (
	"net/http"

	"github.com/pion/webrtc/v4"
)

// buildICEServers turns configured URLs into the RTCIceServer list browsers
// pass to their peer connection. One entry per URL keeps each usable on
// its own.
func buildICEServers(urls []string) []webrtc.ICEServer {
	servers := make([]webrtc.ICEServer, 0, len(urls))
	for _, u := range urls {
		servers = append(servers, webrtc.ICEServer{URLs: []string{u}})
	}
	return servers
}

func (h *Handler) ICEServers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.iceServers)
}
