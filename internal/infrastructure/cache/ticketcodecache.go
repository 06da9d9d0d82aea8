package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/logger"
)

const ticketCodeKeyPrefix = "ticket:code:"

// TicketCodeCache caches the code-to-id mapping in Redis in front of a
// TicketRepository. The mapping is immutable once a code is allocated,
// so entries never need invalidation; the TTL only bounds memory. All
// other repository methods pass through.
type TicketCodeCache struct {
	ticket.TicketRepository
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewTicketCodeCache(
	inner ticket.TicketRepository,
	client *redis.Client,
	ttl time.Duration,
	log logger.Interface,
) *TicketCodeCache {
	return &TicketCodeCache{
		TicketRepository: inner,
		client:           client,
		ttl:              ttl,
		logger:           log,
	}
}

func (c *TicketCodeCache) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	key := ticketCodeKeyPrefix + code

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if id, parseErr := strconv.ParseUint(cached, 10, 64); parseErr == nil {
			t, getErr := c.TicketRepository.GetByID(ctx, uint(id))
			if getErr == nil && t != nil {
				return t, nil
			}
		}
	} else if err != redis.Nil {
		// Redis being down degrades to a database lookup.
		c.logger.Warnw("ticket code cache read failed", "code", code, "error", err)
	}

	t, err := c.TicketRepository.GetByCode(ctx, code)
	if err != nil || t == nil {
		return t, err
	}

	if setErr := c.client.Set(ctx, key, strconv.FormatUint(uint64(t.ID()), 10), c.ttl).Err(); setErr != nil {
		c.logger.Warnw("ticket code cache write failed", "code", code, "error", setErr)
	}

	return t, nil
}
