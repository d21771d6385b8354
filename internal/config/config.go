package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type AuthConfig struct {
	// Secret is the HMAC key caller tokens are signed with.
	Secret string `env:"AUTH_SECRET"`
	Issuer string `env:"AUTH_ISSUER" envDefault:"pusher-ledger"`
}

type GameConfig struct {
	// Policy selects the active economic variant: "currency" or "token".
	Policy string `env:"GAME_POLICY" envDefault:"token"`

	// Mint identifiers are configuration, not core logic.
	OrdinaryMint string `env:"GAME_ORDINARY_MINT" envDefault:"JUNK"`
	RareMint     string `env:"GAME_RARE_MINT" envDefault:"TRASHCOIN"`
}
