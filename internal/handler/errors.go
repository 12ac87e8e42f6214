package handler

import (
	"net/http"

	"github.com/mctasu/vending-machine-service/pkg/utils"
)

// detailMode controls whether server error envelopes carry the
// underlying error as detail. On everywhere except production.
type detailMode bool

func detailModeFor(env string) detailMode {
	return env != "production"
}

func (d detailMode) writeServerError(w http.ResponseWriter, message string, err error) {
	if d {
		utils.WriteErrorDetail(w, message, err, http.StatusInternalServerError)
		return
	}
	utils.WriteError(w, message, http.StatusInternalServerError)
}
