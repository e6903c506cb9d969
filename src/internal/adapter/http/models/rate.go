package models

type RateResponse struct {
	ID           int64  `json:"id"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Rate         string `json:"rate"`
	RateDate     string `json:"rateDate"`
	CreatedAt    string `json:"createdAt"`
}

type GetRateRequest struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
}

func (r GetRateRequest) Validate() error {
	var errs validationErrors
	errs.checkCurrency("fromCurrency", r.FromCurrency, true)
	errs.checkCurrency("toCurrency", r.ToCurrency, true)
	return errs.err()
}

type ConvertRequest struct {
	Amount  string `json:"amount"`
	FromCcy string `json:"fromCcy"`
	ToCcy   string `json:"toCcy"`
}

func (r ConvertRequest) Validate() error {
	var errs validationErrors
	errs.checkAmount("amount", r.Amount)
	errs.checkCurrency("fromCcy", r.FromCcy, true)
	errs.checkCurrency("toCcy", r.ToCcy, true)
	return errs.err()
}

type ConvertResponse struct {
	Amount          string `json:"amount"`
	FromCcy         string `json:"fromCcy"`
	ToCcy           string `json:"toCcy"`
	ConvertedAmount string `json:"convertedAmount"`
	RateUsed        string `json:"rateUsed"`
	RateDate        string `json:"rateDate"`
}
