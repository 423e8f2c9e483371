package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// DialFunc opens a client for uri and proves the server is reachable.
type DialFunc func(ctx context.Context, uri string) (*mongo.Client, error)

// Connector owns the process's single MongoDB client. The first call to
// Client dials; callers arriving while that dial is in flight share its
// outcome, success or failure, and every later call gets the cached client.
// A failed attempt caches nothing, so the next caller dials afresh.
type Connector struct {
	uri       string
	dial      DialFunc
	onConnect func(ctx context.Context, client *mongo.Client) error
	logger    *slog.Logger

	attempts singleflight.Group

	mu     sync.Mutex
	client *mongo.Client
}

const connectKey = "connect"

// NewConnector returns a Connector for uri. Nothing is dialed until the
// first call to Client.
func NewConnector(uri string, logger *slog.Logger) *Connector {
	c := &Connector{
		uri:    uri,
		logger: logger,
	}
	c.dial = c.dialAndPing
	return c
}

// OnConnect registers fn to run once on a freshly dialed client before it is
// cached. If fn fails the client is discarded.
func (c *Connector) OnConnect(fn func(ctx context.Context, client *mongo.Client) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnect = fn
}

// Client returns the shared client, dialing on first use. The shared dial
// is detached from the cancellation of whichever caller started it.
func (c *Connector) Client(ctx context.Context) (*mongo.Client, error) {
	if client := c.cached(); client != nil {
		return client, nil
	}

	v, err, _ := c.attempts.Do(connectKey, func() (any, error) {
		if client := c.cached(); client != nil {
			return client, nil
		}
		return c.connect(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

func (c *Connector) cached() *mongo.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client
}

// connect runs one dial plus the OnConnect hook and caches the client.
func (c *Connector) connect(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	onConnect := c.onConnect
	c.mu.Unlock()

	start := time.Now()
	client, err := c.dial(ctx, c.uri)
	if err != nil {
		c.logger.Error("mongodb connection failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	if onConnect != nil {
		if err := onConnect(ctx, client); err != nil {
			c.disconnect(client)
			return nil, fmt.Errorf("mongo: preparing connection: %w", err)
		}
	}

	c.mu.Lock()
	c.client = client
	c.mu.Unlock()

	c.logger.Info("mongodb connected", slog.Duration("took", time.Since(start)))
	return client, nil
}

// disconnect drops a client that will not be cached.
func (c *Connector) disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		c.logger.Warn("mongodb disconnect failed", slog.String("error", err.Error()))
	}
}

// Close disconnects the cached client, if any.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	if err != nil {
		return fmt.Errorf("mongo: disconnecting: %w", err)
	}
	return nil
}

// dialAndPing connects and pings, so an unreachable server fails here
// rather than on the first query.
func (c *Connector) dialAndPing(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		c.disconnect(client)
		return nil, err
	}
	return client, nil
}
