package catalogd

import "time"

type clientConfig struct {
	addrs     []string
	username  string
	password  string
	db        int
	keyPrefix string
	clock     func() time.Time
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the redis addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithCredentials sets the database credentials.
func WithCredentials(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects the redis logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithKeyPrefix overrides the storage key prefix. Useful for running
// several deployments against one database.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithClock overrides the clock stamping catalog records. Intended for
// import tooling replaying historical data.
func WithClock(clock func() time.Time) Option {
	return func(c *clientConfig) {
		c.clock = clock
	}
}
