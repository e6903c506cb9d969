package models

type OperatorResponse struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	TransferTypes []string `json:"transferTypes"`
	Countries     []string `json:"countries"`
}

type ReferenceDataResponse struct {
	Operators          []OperatorResponse `json:"operators"`
	SourcesOfFunds     []string           `json:"sourcesOfFunds"`
	PurposesOfTransfer []string           `json:"purposesOfTransfer"`
	PaymentMethods     []string           `json:"paymentMethods"`
	FeePayers          []string           `json:"feePayers"`
	Currencies         []string           `json:"currencies"`
}
