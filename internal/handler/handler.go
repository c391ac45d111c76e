package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/InQaaaaGit/meshprice.git/internal/config"
	"github.com/InQaaaaGit/meshprice.git/internal/middleware"
	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"github.com/InQaaaaGit/meshprice.git/internal/optimizer"
	"github.com/InQaaaaGit/meshprice.git/internal/service"
	"github.com/InQaaaaGit/meshprice.git/internal/storage"
	"go.uber.org/zap"
)

const (
	contentTypeJSON     = "application/json"
	noFileMessage       = "No file was uploaded"
	badExtensionMessage = "Only STL or OBJ files are supported"
	missingPriceMessage = "Missing pricing information"
	missingOrderMessage = "Missing required order information"
)

// Analyzer определяет интерфейс анализа mesh-файлов
type Analyzer interface {
	Analyze(filename string, data []byte) (models.AnalyzeResult, error)
}

// Pricer определяет интерфейс расчета стоимости печати
type Pricer interface {
	Calculate(massGrams float64, tech, material string) models.PriceResult
}

// Orders определяет интерфейс оформления заказов
type Orders interface {
	Create(ctx context.Context, userID string, req models.OrderRequest) (models.OrderResult, error)
	GetUserOrders(ctx context.Context, userID string) ([]models.UserOrder, error)
}

// Optimizer определяет интерфейс шлюза оптимизации больших файлов
type Optimizer interface {
	NeedsOptimization(sizeBytes int64) bool
	Optimize(ctx context.Context, artifact optimizer.Artifact) optimizer.Outcome
}

type Handler struct {
	analyzer Analyzer
	pricer   Pricer
	orders   Orders
	gateway  Optimizer
	storage  storage.OrderStorage
	cfg      *config.Config
	logger   *zap.Logger
}

func NewHandler(analyzer Analyzer, pricer Pricer, orders Orders, gateway Optimizer, st storage.OrderStorage, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		pricer:   pricer,
		orders:   orders,
		gateway:  gateway,
		storage:  st,
		cfg:      cfg,
		logger:   logger,
	}
}

// HandleIndex обрабатывает GET запрос проверки работоспособности сервиса
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte("<h2>Mesh pricing service is running!</h2>")); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// HandleUpload обрабатывает POST запрос загрузки mesh-файла.
// Файлы больше порога оптимизации проходят через шлюз оптимизации
// перед анализом; неудача оптимизации не прерывает обработку.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readUploadedFile(w, r)
	if !ok {
		return
	}

	size := int64(len(data))
	h.logger.Info("File uploaded",
		zap.String("filename", filename),
		zap.Float64("size_mb", bytesToMB(size)))

	response := models.UploadResponse{Success: true}

	if h.gateway.NeedsOptimization(size) {
		h.logger.Info("File is large, attempting optimization", zap.String("filename", filename))
		outcome := h.gateway.Optimize(r.Context(), optimizer.Artifact{Name: filename, Data: data})

		if outcome.WasOptimized {
			result, err := h.analyzer.Analyze(filename, outcome.Data)
			if err != nil {
				// Оптимизированный файл не анализируется, пробуем исходный
				h.logger.Warn("Error analyzing optimized file, falling back to original",
					zap.String("filename", filename), zap.Error(err))
			} else {
				response.AnalyzeResult = result
				response.WasOptimized = true
				response.OriginalSizeMB = round2(bytesToMB(outcome.OriginalSize))
				response.OptimizedSizeMB = round2(bytesToMB(outcome.OptimizedSize))
				response.CompressionRatio = round1((1 - float64(outcome.OptimizedSize)/float64(outcome.OriginalSize)) * 100)
				h.writeJSON(w, http.StatusOK, response)
				return
			}
		} else if outcome.Diagnostic != "" {
			h.logger.Warn("Mesh optimization skipped",
				zap.String("filename", filename), zap.String("diagnostic", outcome.Diagnostic))
		}
	}

	result, err := h.analyzer.Analyze(filename, data)
	if err != nil {
		h.logger.Error("Error analyzing file", zap.String("filename", filename), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	response.AnalyzeResult = result
	h.writeJSON(w, http.StatusOK, response)
}

// HandleAnalyze обрабатывает POST запрос анализа файла без оптимизации
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readUploadedFile(w, r)
	if !ok {
		return
	}

	result, err := h.analyzer.Analyze(filename, data)
	if err != nil {
		h.logger.Error("Error analyzing file", zap.String("filename", filename), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis error: %v", err))
		return
	}

	h.writeJSON(w, http.StatusOK, models.UploadResponse{Success: true, AnalyzeResult: result})
}

// HandlePrice обрабатывает POST запрос расчета стоимости печати
func (h *Handler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	var req models.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	if req.MassGrams == nil || req.Tech == "" || req.Material == "" {
		h.writeError(w, http.StatusBadRequest, missingPriceMessage)
		return
	}

	result := h.pricer.Calculate(*req.MassGrams, req.Tech, req.Material)
	h.writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		models.PriceResult
	}{Success: true, PriceResult: result})
}

// HandleOrder обрабатывает POST запрос оформления заказа
func (h *Handler) HandleOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.orders.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrMissingOrderFields) {
			h.writeError(w, http.StatusBadRequest, missingOrderMessage)
			return
		}
		h.logger.Error("Error creating order", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetUserOrders обрабатывает GET запрос списка заказов пользователя
func (h *Handler) HandleGetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.orders.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting user orders", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// readUploadedFile читает файл из multipart-формы и проверяет его имя
// и расширение. При ошибке пишет ответ и возвращает ok=false.
func (h *Handler) readUploadedFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, noFileMessage)
		return "", nil, false
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.Error("Error closing uploaded file", zap.Error(err))
		}
	}()

	if header.Filename == "" {
		h.writeError(w, http.StatusBadRequest, noFileMessage)
		return "", nil, false
	}
	if !service.AllowedFile(header.Filename) {
		h.writeError(w, http.StatusBadRequest, badExtensionMessage)
		return "", nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Error reading uploaded file", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return "", nil, false
	}

	return header.Filename, data, true
}

// writeJSON сериализует ответ в JSON с указанным статусом
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// writeError пишет JSON-ответ с сообщением об ошибке
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, models.ErrorResponse{Success: false, Message: message})
}

func bytesToMB(size int64) float64 {
	return float64(size) / 1024 / 1024
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
