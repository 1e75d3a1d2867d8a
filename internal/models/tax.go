package models

// TaxStrategy is the simulated outcome of selling under one cost-basis method.
type TaxStrategy struct {
	Method            string  `json:"method"`
	CostBasisConsumed float64 `json:"cost_basis_consumed"`
	Proceeds          float64 `json:"proceeds"`
	// TaxImpact = proceeds − costBasisConsumed. Negative means a harvested loss.
	TaxImpact float64 `json:"tax_impact"`
}

// TaxOptimization is the tax-loss optimizer's recommendation for a planned
// sale: the method with the lowest tax impact plus the rejected alternatives.
type TaxOptimization struct {
	Asset        string        `json:"asset"`
	SellQuantity float64       `json:"sell_quantity"`
	CurrentPrice float64       `json:"current_price"`
	Recommended  TaxStrategy   `json:"recommended"`
	Alternatives []TaxStrategy `json:"alternatives"`
}
