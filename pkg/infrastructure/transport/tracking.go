package transport

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	accountmodel "storefront/pkg/account/domain/model"
	analysismodel "storefront/pkg/analysis/domain/model"
)

func (h *handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.Tracker.Track(mux.Vars(r)["orderNumber"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrackingResponse(tracking))
}

// submitAnalysis accepts the photo as a multipart "image" field.
func (h *handler) submitAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(w, r, analysismodel.ErrEmptyImage)
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, accountmodel.ErrFileTooLarge)
			return
		}
		writeError(w, r, badRequest(errors.Wrap(err, "read image")))
		return
	}
	defer file.Close()
	if header.Size > h.maxUploadSize {
		writeError(w, r, accountmodel.ErrFileTooLarge)
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, errors.Wrap(err, "read image"))
		return
	}
	result, err := h.Analyzer.SubmitImage(image)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toAnalysisResponse(result))
}
