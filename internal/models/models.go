package models

// Dimensions представляет габариты модели в миллиметрах
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AnalyzeResult представляет результат геометрического анализа mesh-файла
type AnalyzeResult struct {
	Filename     string     `json:"filename"`
	VolumeCm3    float64    `json:"volume_cm3"`
	DimensionsMM Dimensions `json:"dimensions_mm"`
	MassGrams    float64    `json:"mass_grams"`
	DensityGCm3  float64    `json:"density_g_cm3"`
}

// UploadResponse представляет ответ на загрузку файла.
// Поля оптимизации заполняются только если файл был оптимизирован.
type UploadResponse struct {
	Success bool `json:"success"`
	AnalyzeResult
	WasOptimized     bool    `json:"was_optimized,omitempty"`
	OriginalSizeMB   float64 `json:"original_size_mb,omitempty"`
	OptimizedSizeMB  float64 `json:"optimized_size_mb,omitempty"`
	CompressionRatio float64 `json:"compression_ratio,omitempty"`
}

// ErrorResponse представляет ответ с сообщением об ошибке
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
