package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Cleaner periodically removes published rows past the retention window and
// dead rows past the dead retention window from one outbox table.
type Cleaner struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
	opts  CleanerOptions
}

func NewCleaner(pool *pgxpool.Pool, table pgx.Identifier, opts CleanerOptions) (*Cleaner, error) {
	if pool == nil {
		return nil, invalidConfig("pool is required")
	}
	if len(table) == 0 {
		return nil, invalidConfig("table is required")
	}
	opts.setDefaults()
	return &Cleaner{pool: pool, table: table, opts: opts}, nil
}

func (c *Cleaner) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := c.cleanOnce(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			c.opts.Logger.WithError(err).Warn("outbox: clean tick failed")
		}
	}
}

func (c *Cleaner) cleanOnce(ctx context.Context) error {
	now := time.Now()

	published := fmt.Sprintf(
		`DELETE FROM %s WHERE published_at IS NOT NULL AND published_at < $1`,
		c.table.Sanitize(),
	)
	tag, err := c.pool.Exec(ctx, published, now.Add(-c.opts.Retention))
	if err != nil {
		return fmt.Errorf("outbox clean published: %w", err)
	}
	if tag.RowsAffected() > 0 {
		c.opts.Logger.WithField("rows", tag.RowsAffected()).Debug("outbox: removed published messages")
	}

	dead := fmt.Sprintf(
		`DELETE FROM %s
		  WHERE published_at IS NULL
		    AND attempts >= $1
		    AND created_at < $2`,
		c.table.Sanitize(),
	)
	tag, err = c.pool.Exec(ctx, dead, c.opts.DeadAttemptsThreshold, now.Add(-c.opts.DeadRetention))
	if err != nil {
		return fmt.Errorf("outbox clean dead: %w", err)
	}
	if tag.RowsAffected() > 0 {
		c.opts.Logger.WithField("rows", tag.RowsAffected()).Warn("outbox: removed dead messages")
	}
	return nil
}
