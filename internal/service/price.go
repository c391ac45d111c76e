package service

import "github.com/InQaaaaGit/meshprice.git/internal/models"

// priceKey — ключ таблицы цен: технология печати и материал
type priceKey struct {
	Tech     string
	Material string
}

// Цена за грамм по технологии и материалу
var priceTable = map[priceKey]int{
	{"FDM", "PLA"}:     1000,
	{"FDM", "ABS"}:     1200,
	{"Resin", "Resin"}: 3000,
}

// defaultPricePerGram используется для неизвестных комбинаций
const defaultPricePerGram = 1000

// PriceService рассчитывает стоимость печати по массе модели
type PriceService struct{}

// NewPriceService создает новый экземпляр PriceService
func NewPriceService() *PriceService {
	return &PriceService{}
}

// Calculate возвращает стоимость печати модели заданной массы
func (s *PriceService) Calculate(massGrams float64, tech, material string) models.PriceResult {
	pricePerGram, ok := priceTable[priceKey{Tech: tech, Material: material}]
	if !ok {
		pricePerGram = defaultPricePerGram
	}

	return models.PriceResult{
		Price:    int(massGrams * float64(pricePerGram)),
		Tech:     tech,
		Material: material,
	}
}
