package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type ClientRepository struct {
	mu      sync.RWMutex
	clients map[string]domain.Client
}

func NewClientRepository(seedClients []domain.Client) *ClientRepository {
	r := &ClientRepository{clients: make(map[string]domain.Client, len(seedClients))}
	for _, c := range seedClients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *ClientRepository) Save(_ context.Context, client domain.Client) (domain.Client, error) {
	logger.Debug("client repository save", logger.Fields{
		"clientId": client.ID,
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.clients[client.ID]; ok {
		client.CreatedAt = existing.CreatedAt
	} else if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now
	r.clients[client.ID] = client

	return client, nil
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[strings.TrimSpace(id)]
	if !ok {
		return domain.Client{}, commons.ErrRecordNotFound
	}
	return client, nil
}

func (r *ClientRepository) Search(_ context.Context, query string) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		if c.Matches(query) {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
