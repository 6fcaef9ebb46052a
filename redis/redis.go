package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/instanceid"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/model"
)

const (
	// ResultChannelName is the pub/sub channel announcing stored audit results
	ResultChannelName = "sigwatch_audit_sync"
	// LastResultKey holds the most recent audit result of all instances
	LastResultKey = "sigwatch:audit:last"
)

// ResultMessage wraps an audit result with the id of the instance which ran it
type ResultMessage struct {
	Source string             `json:"source"`
	Result *model.AuditResult `json:"result"`
}

// MarshalBinary encodes the struct to json
func (m *ResultMessage) MarshalBinary() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalBinary decodes the struct into a ResultMessage
func (m *ResultMessage) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, m)
}

// Client shares audit results between probe instances
type Client struct {
	config *config.Redis
	client *redis.Client
	l      *logrus.Entry
}

// New creates a new redis client. It returns nil without error if no address is configured.
func New(ctx context.Context, cfg *config.Redis) (*Client, error) {
	if cfg == nil || !cfg.IsEnabled() {
		return nil, nil //nolint:nilnil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	err := retry.Do(
		func() error {
			return rdb.Ping(ctx).Err()
		},
		retry.Attempts(uint(max(cfg.ConnectionAttempts, 1))),
		retry.Delay(cfg.ConnectionCooldown.ToDuration()),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		_ = rdb.Close()

		return nil, fmt.Errorf("can't connect to redis %s: %w", cfg.Address, err)
	}

	return &Client{
		config: cfg,
		client: rdb,
		l:      log.PrefixedLog("redis"),
	}, nil
}

// StoreResult saves the result as last result and announces it to the other instances
func (c *Client) StoreResult(ctx context.Context, result *model.AuditResult) error {
	msg := &ResultMessage{
		Source: instanceid.String(),
		Result: result,
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, LastResultKey, msg, c.config.ResultTTL.ToDuration())
		pipe.Publish(ctx, ResultChannelName, msg)

		return nil
	})
	if err != nil {
		return fmt.Errorf("can't store audit result %s: %w", result.RunID, err)
	}

	return nil
}

// LastResult returns the most recent stored result or nil if there is none
func (c *Client) LastResult(ctx context.Context) (*model.AuditResult, error) {
	var msg ResultMessage

	err := c.client.Get(ctx, LastResultKey).Scan(&msg)
	if errors.Is(err, redis.Nil) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("can't read last audit result: %w", err)
	}

	return msg.Result, nil
}

// Subscribe calls fn for every result stored by another instance until ctx is done
func (c *Client) Subscribe(ctx context.Context, fn func(*model.AuditResult)) error {
	ps := c.client.Subscribe(ctx, ResultChannelName)

	// wait for the subscription to be confirmed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()

		return fmt.Errorf("can't subscribe to %s: %w", ResultChannelName, err)
	}

	go func() {
		defer ps.Close()

		ch := ps.Channel()

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}

				c.processMessage(msg, fn)

			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (c *Client) processMessage(msg *redis.Message, fn func(*model.AuditResult)) {
	var rm ResultMessage

	if err := rm.UnmarshalBinary([]byte(msg.Payload)); err != nil {
		c.l.Error("can't decode received audit result: ", err)

		return
	}

	if instanceid.IsOwn(rm.Source) || rm.Result == nil {
		return
	}

	c.l.WithField("run_id", rm.Result.RunID).Debugf("received audit result from %s", rm.Source)

	fn(rm.Result)
}

// Close closes the connection
func (c *Client) Close() error {
	return c.client.Close()
}
