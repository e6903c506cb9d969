package domain

// Operator is a payout partner a transfer is routed through.
type Operator struct {
	Name          string
	Code          string
	TransferTypes []string
	Countries     []string
}

type ReferenceData struct {
	Operators          []Operator
	SourcesOfFunds     []string
	PurposesOfTransfer []string
	PaymentMethods     []PaymentMethod
	FeePayers          []FeePayer
}
