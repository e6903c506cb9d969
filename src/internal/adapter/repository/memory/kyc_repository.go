package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type KYCRepository struct {
	mu            sync.RWMutex
	verifications []domain.KYCVerification
}

func NewKYCRepository() *KYCRepository {
	return &KYCRepository{}
}

func (r *KYCRepository) Create(_ context.Context, verification domain.KYCVerification) (domain.KYCVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	verification.ID = uuid.NewString()
	verification.CreatedAt = now
	verification.UpdatedAt = now
	r.verifications = append(r.verifications, verification)

	logger.Debug("kyc repository create", logger.Fields{
		"verificationId": verification.ID,
		"clientId":       verification.ClientID,
	})

	return verification, nil
}

func (r *KYCRepository) List(_ context.Context, clientID string) ([]domain.KYCVerification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clientID = strings.TrimSpace(clientID)
	out := make([]domain.KYCVerification, 0)
	for i := len(r.verifications) - 1; i >= 0; i-- {
		v := r.verifications[i]
		if clientID == "" || v.ClientID == clientID {
			out = append(out, v)
		}
	}
	return out, nil
}
