package messaging

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

// LogDispatcher accepts every transfer and only records it in the log. It is
// the default when no broker is configured.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, msg domain.TransferDispatchMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("log dispatcher accepted transfer", logger.Fields{
		"reference":           msg.Reference,
		"attempt":             msg.Attempt,
		"receiverCountry":     msg.ReceiverCountry,
		"destinationCurrency": msg.DestinationCurrency,
		"recipientAmount":     msg.RecipientAmount.StringFixed(2),
	})
	return nil
}

func (d *LogDispatcher) Close() error {
	return nil
}
