package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/cache"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/memory"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

const tellerID = seed.DemoTellerID

var errPayoutDown = errors.New("payout channel unavailable")

type dispatcherStub struct {
	mu         sync.Mutex
	dispatchFn func(ctx context.Context, msg domain.TransferDispatchMessage) error
	messages   []domain.TransferDispatchMessage
}

func (d *dispatcherStub) Dispatch(ctx context.Context, msg domain.TransferDispatchMessage) error {
	d.mu.Lock()
	d.messages = append(d.messages, msg)
	d.mu.Unlock()
	if d.dispatchFn != nil {
		return d.dispatchFn(ctx, msg)
	}
	return nil
}

// failFirst fails the first n dispatch attempts.
func failFirst(n int) *dispatcherStub {
	return &dispatcherStub{
		dispatchFn: func(_ context.Context, msg domain.TransferDispatchMessage) error {
			if msg.Attempt <= n {
				return errPayoutDown
			}
			return nil
		},
	}
}

type receiptStub struct{}

func (receiptStub) TransferReceipt(t domain.Transfer) ([]byte, error) {
	return []byte("%PDF-" + t.Reference), nil
}

type desk struct {
	clients   *memory.ClientRepository
	kyc       *memory.KYCRepository
	transfers *memory.TransferRepository
	till      *memory.TillRepository
	sleeps    []time.Duration

	rateService     *services.RateService
	chargesService  *services.ChargesService
	tillService     *services.TillService
	transferService *services.TransferService
	clientService   *services.ClientService
	sendMoney       *services.SendMoneyService
}

func newDesk(t *testing.T, dispatcher *dispatcherStub) *desk {
	t.Helper()

	d := &desk{
		clients:   memory.NewClientRepository(seed.Clients()),
		kyc:       memory.NewKYCRepository(),
		transfers: memory.NewTransferRepository(seed.Transfers()),
		till:      memory.NewTillRepository(seed.Registers(tellerID, time.Now())),
	}

	d.rateService = services.NewRateService(memory.NewRateRepository(seed.Rates()))
	d.chargesService = services.NewChargesService(domain.DefaultFeePolicy(), d.rateService)
	d.tillService = services.NewTillService(d.till, nil)
	d.transferService = services.NewTransferService(
		d.transfers,
		d.rateService,
		d.tillService,
		dispatcher,
		receiptStub{},
		nil,
		services.TransferPolicy{
			Limits:      domain.DefaultTransferLimits("USD"),
			Risk:        domain.DefaultRiskPolicy(),
			MaxAttempts: 3,
			Backoff:     time.Second,
		},
	).WithSleeper(func(_ context.Context, wait time.Duration) error {
		d.sleeps = append(d.sleeps, wait)
		return nil
	})
	d.clientService = services.NewClientService(d.clients, d.kyc, d.transfers, d.transferService, "USD")
	d.sendMoney = services.NewSendMoneyService(
		cache.NewSessionStore(100, time.Hour),
		d.clientService,
		d.rateService,
		d.chargesService,
		d.transferService,
		nil,
		services.SendMoneyOptions{
			Defaults:          domain.DefaultFormDefaults(),
			EchoTwoFactorCode: true,
		},
	).WithCodeGenerator(func() (string, error) { return "123456", nil })

	return d
}
