package services

import (
	"context"
	"sort"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.ReferenceService = (*ReferenceService)(nil)

type ReferenceService struct {
	operatorRepo repo_interfaces.OperatorRepository
	rateRepo     repo_interfaces.RateRepository
}

func NewReferenceService(operatorRepo repo_interfaces.OperatorRepository, rateRepo repo_interfaces.RateRepository) *ReferenceService {
	return &ReferenceService{operatorRepo: operatorRepo, rateRepo: rateRepo}
}

func (s *ReferenceService) GetReferenceData(ctx context.Context) (commons.Response[models.ReferenceDataResponse], error) {
	logger.Info("reference service get reference data request", nil)

	operators, err := s.operatorRepo.GetAll(ctx)
	if err != nil {
		logger.Error("reference service get operators failed", err, nil)
		return commons.ErrorResponse[models.ReferenceDataResponse]("failed to fetch reference data", "Unable to fetch reference data right now"), err
	}

	rates, err := s.rateRepo.GetRates(ctx)
	if err != nil {
		logger.Error("reference service get rates failed", err, nil)
		return commons.ErrorResponse[models.ReferenceDataResponse]("failed to fetch reference data", "Unable to fetch reference data right now"), err
	}

	resp := models.ReferenceDataResponse{
		Operators:          make([]models.OperatorResponse, 0, len(operators)),
		SourcesOfFunds:     seed.SourcesOfFunds(),
		PurposesOfTransfer: seed.PurposesOfTransfer(),
		PaymentMethods:     make([]string, 0, len(domain.PaymentMethods)),
		FeePayers:          []string{string(domain.FeePayerSender), string(domain.FeePayerBeneficiary), string(domain.FeePayerBoth)},
		Currencies:         currenciesFromRates(rates),
	}
	for _, op := range operators {
		resp.Operators = append(resp.Operators, models.OperatorResponse{
			Name:          op.Name,
			Code:          op.Code,
			TransferTypes: append([]string{}, op.TransferTypes...),
			Countries:     append([]string{}, op.Countries...),
		})
	}
	for _, method := range domain.PaymentMethods {
		resp.PaymentMethods = append(resp.PaymentMethods, string(method))
	}

	logger.Info("reference service get reference data success", logger.Fields{
		"operators":  len(resp.Operators),
		"currencies": len(resp.Currencies),
	})

	return commons.SuccessResponse("reference data fetched successfully", resp), nil
}

func currenciesFromRates(rates []domain.Rate) []string {
	seen := map[string]struct{}{}
	for _, r := range rates {
		seen[r.FromCurrency] = struct{}{}
		seen[r.ToCurrency] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ccy := range seen {
		out = append(out, ccy)
	}
	sort.Strings(out)
	return out
}
