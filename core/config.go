package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lendity config
type Config struct {
	App    App       `json:"app"`
	DB     db.Config `json:"db"`
	Oracle Oracle    `json:"oracle"`
	Rates  Rates     `json:"rates"`
	Admins []string  `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Location string `json:"location"`
	Port     int    `json:"port"`
}

// Oracle price oracle config
type Oracle struct {
	// 价格最大有效时长, 秒
	MaxStaleness int64 `json:"max_staleness"`
	// asset id -> feed id
	Feeds map[string]string `json:"feeds"`
}

// MaxAge staleness window as a duration
func (o Oracle) MaxAge() time.Duration {
	return time.Duration(o.MaxStaleness) * time.Second
}

// Rates default jump-rate curve parameters applied to new banks
type Rates struct {
	BaseRate       decimal.Decimal `json:"base_rate"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
	Kink           decimal.Decimal `json:"kink"`
	CloseFactor    decimal.Decimal `json:"close_factor"`
	ReserveFactor  decimal.Decimal `json:"reserve_factor"`
}
