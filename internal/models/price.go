package models

// PriceRequest представляет запрос на расчет стоимости печати
type PriceRequest struct {
	MassGrams *float64 `json:"mass_grams"`
	Tech      string   `json:"tech"`
	Material  string   `json:"material"`
}

// PriceResult представляет рассчитанную стоимость печати
type PriceResult struct {
	Price    int    `json:"price"`
	Tech     string `json:"tech"`
	Material string `json:"material"`
}
