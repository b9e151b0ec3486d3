package reference

import (
	"net/http"

	"backend/server/util"
)

// Version is set at build time through -ldflags.
var Version = "development"

type VersionResponse struct {
	Version string `json:"version"`
}

func VersionHandler(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, VersionResponse{Version: Version})
}
