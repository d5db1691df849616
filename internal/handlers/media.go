package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
)

// PictureReader fetches stored picture bytes by key.
type PictureReader interface {
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// NewMediaHandler returns an HTTP handler streaming stored profile pictures.
// It expects to be mounted on a wildcard route such as /media/*.
func NewMediaHandler(store PictureReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		if key == "" {
			http.NotFound(w, r)
			return
		}

		data, contentType, err := store.Get(r.Context(), key)
		if err != nil {
			logger.Log.Infow("media not found", "key", key, "err", err)
			http.NotFound(w, r)
			return
		}

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.Write(data)
	}
}
