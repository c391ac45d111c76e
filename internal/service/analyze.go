package service

import (
	"errors"
	"math"
	"path/filepath"
	"strings"

	"github.com/InQaaaaGit/meshprice.git/internal/mesh"
	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"go.uber.org/zap"
)

// DensityGCm3 — плотность материала по умолчанию (PLA), г/см³
const DensityGCm3 = 1.24

// ErrInvalidVolume возвращается, когда объем модели вычислить нельзя
// (незамкнутая или вывернутая сетка)
var ErrInvalidVolume = errors.New("cannot compute volume from this file")

var allowedExtensions = map[string]bool{
	"stl": true,
	"obj": true,
}

// AllowedFile проверяет, поддерживается ли расширение файла
func AllowedFile(filename string) bool {
	return FileExt(filename) != "" && allowedExtensions[FileExt(filename)]
}

// FileExt возвращает расширение файла в нижнем регистре без точки
func FileExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// AnalyzeService вычисляет геометрические характеристики mesh-файлов
type AnalyzeService struct {
	logger *zap.Logger
}

// NewAnalyzeService создает новый экземпляр AnalyzeService
func NewAnalyzeService(logger *zap.Logger) *AnalyzeService {
	return &AnalyzeService{logger: logger}
}

// Analyze разбирает файл и возвращает объем, габариты и массу модели.
// Координаты модели интерпретируются в миллиметрах.
func (s *AnalyzeService) Analyze(filename string, data []byte) (models.AnalyzeResult, error) {
	m, err := mesh.Decode(data, FileExt(filename))
	if err != nil {
		return models.AnalyzeResult{}, err
	}

	volumeCm3 := m.Volume() / 1000
	if volumeCm3 <= 0 {
		return models.AnalyzeResult{}, ErrInvalidVolume
	}

	min, max := m.Bounds()
	massGrams := volumeCm3 * DensityGCm3

	return models.AnalyzeResult{
		Filename:  filepath.Base(filename),
		VolumeCm3: round2(volumeCm3),
		DimensionsMM: models.Dimensions{
			Length: round2(max[0] - min[0]),
			Width:  round2(max[1] - min[1]),
			Height: round2(max[2] - min[2]),
		},
		MassGrams:   round2(massGrams),
		DensityGCm3: DensityGCm3,
	}, nil
}

// round2 округляет до двух знаков после запятой
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
