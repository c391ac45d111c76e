// Package optimizer реализует шлюз оптимизации больших mesh-файлов.
// Шлюз решает, нужна ли оптимизация по размеру файла, и делегирует
// упрощение первому доступному внешнему бэкенду. Любая ошибка оптимизации
// не фатальна: вызывающему всегда возвращается результат, в худшем случае
// с исходными данными без изменений.
package optimizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Artifact представляет загруженный файл: имя и содержимое.
// Содержимое неизменяемо в течение запроса.
type Artifact struct {
	Name string
	Data []byte
}

// Outcome представляет результат попытки оптимизации.
// При WasOptimized=false Data содержит исходные байты без изменений.
type Outcome struct {
	WasOptimized  bool
	Data          []byte
	OriginalSize  int64
	OptimizedSize int64
	Backend       string
	Diagnostic    string
}

// Gateway решает, нужна ли оптимизация, и делегирует ее бэкендам
// в порядке приоритета. Не хранит состояния между вызовами и безопасен
// для конкурентного использования.
type Gateway struct {
	backends  []Backend
	threshold int64
	opts      Options
	timeout   time.Duration
	tempDir   string
	logger    *zap.Logger
}

// NewGateway создает шлюз со стандартным набором бэкендов:
// MeshLab, затем Blender.
func NewGateway(threshold int64, targetRatio float64, timeout time.Duration, tempDir string, logger *zap.Logger) *Gateway {
	return NewGatewayWithBackends(threshold, targetRatio, timeout, tempDir, logger,
		NewMeshLabBackend(), NewBlenderBackend())
}

// NewGatewayWithBackends создает шлюз с явным списком бэкендов,
// упорядоченным по приоритету.
func NewGatewayWithBackends(threshold int64, targetRatio float64, timeout time.Duration, tempDir string, logger *zap.Logger, backends ...Backend) *Gateway {
	gw := &Gateway{
		backends:  backends,
		threshold: threshold,
		opts:      Options{TargetRatio: targetRatio},
		timeout:   timeout,
		tempDir:   tempDir,
		logger:    logger,
	}
	for _, b := range backends {
		if b.Available() {
			logger.Info("Optimization backend is available", zap.String("backend", b.Name()))
		} else {
			logger.Warn("Optimization backend is not available", zap.String("backend", b.Name()))
		}
	}
	return gw
}

// NeedsOptimization сообщает, нужна ли файлу оптимизация по его размеру.
// Файл размером ровно в порог оптимизации не требует.
func (g *Gateway) NeedsOptimization(sizeBytes int64) bool {
	return sizeBytes > g.threshold
}

// Optimize пытается уменьшить артефакт, перебирая бэкенды в порядке
// приоритета. Каждый вызов работает в собственном временном каталоге,
// который удаляется на любом пути выхода. Ошибки оптимизации никогда
// не возвращаются вызывающему: при любой неудаче результат содержит
// исходные данные.
func (g *Gateway) Optimize(ctx context.Context, artifact Artifact) Outcome {
	originalSize := int64(len(artifact.Data))
	unchanged := Outcome{
		Data:          artifact.Data,
		OriginalSize:  originalSize,
		OptimizedSize: originalSize,
	}

	workDir, err := os.MkdirTemp(g.tempDir, "meshopt-*")
	if err != nil {
		g.logger.Error("Error creating temp directory", zap.Error(err))
		unchanged.Diagnostic = fmt.Sprintf("temp directory: %v", err)
		return unchanged
	}
	// Временные файлы удаляются на каждом пути выхода
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			g.logger.Error("Error removing temp directory", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	name := filepath.Base(artifact.Name)
	inputPath := filepath.Join(workDir, "original_"+name)
	outputPath := filepath.Join(workDir, "optimized_"+name)

	if err := os.WriteFile(inputPath, artifact.Data, 0o600); err != nil {
		g.logger.Error("Error writing original file", zap.Error(err))
		unchanged.Diagnostic = fmt.Sprintf("write original: %v", err)
		return unchanged
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	tried := 0
	for _, backend := range g.backends {
		if !backend.Available() {
			continue
		}
		tried++

		if err := backend.Simplify(ctx, inputPath, outputPath, g.opts); err != nil {
			g.logger.Error("Backend optimization failed",
				zap.String("backend", backend.Name()), zap.Error(err))
			unchanged.Diagnostic = fmt.Sprintf("%s: %v", backend.Name(), err)
			continue
		}

		optimized, err := os.ReadFile(outputPath)
		if err != nil {
			g.logger.Error("Error reading optimized file",
				zap.String("backend", backend.Name()), zap.Error(err))
			unchanged.Diagnostic = fmt.Sprintf("%s: read result: %v", backend.Name(), err)
			continue
		}

		if int64(len(optimized)) >= originalSize {
			g.logger.Info("Optimization did not reduce file size",
				zap.String("backend", backend.Name()),
				zap.Int64("original_size", originalSize),
				zap.Int("optimized_size", len(optimized)))
			unchanged.Diagnostic = fmt.Sprintf("%s: result not smaller than original", backend.Name())
			continue
		}

		g.logger.Info("File optimized",
			zap.String("backend", backend.Name()),
			zap.Int64("original_size", originalSize),
			zap.Int("optimized_size", len(optimized)))
		return Outcome{
			WasOptimized:  true,
			Data:          optimized,
			OriginalSize:  originalSize,
			OptimizedSize: int64(len(optimized)),
			Backend:       backend.Name(),
		}
	}

	if tried == 0 {
		g.logger.Warn("No optimization backends available, returning original file")
		unchanged.Diagnostic = "no optimization backends available"
	}
	return unchanged
}
