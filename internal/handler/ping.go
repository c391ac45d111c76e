package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/InQaaaaGit/meshprice.git/internal/storage"
	"go.uber.org/zap"
)

// HandlePing обрабатывает запрос на проверку соединения с хранилищем заказов
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	checker, ok := h.storage.(storage.DatabaseChecker)
	if !ok {
		h.logger.Error("Storage does not support connection check")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := checker.CheckConnection(ctx); err != nil {
		h.logger.Error("Storage connection check failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
