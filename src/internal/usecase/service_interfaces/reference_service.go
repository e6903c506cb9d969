package service_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type ReferenceService interface {
	GetReferenceData(ctx context.Context) (commons.Response[models.ReferenceDataResponse], error)
}
