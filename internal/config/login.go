package config

import (
	"time"

	"github.com/spf13/viper"
)

// LoginLimitConfig bounds admin login attempts per identity with a token
// bucket: Capacity attempts, one attempt restored every RefillInterval.
type LoginLimitConfig struct {
	Capacity       int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

func loadLoginLimitConfig(v *viper.Viper) LoginLimitConfig {
	def := LoginLimitConfig{
		Capacity:       v.GetInt("LOGIN_MAX_ATTEMPTS"),
		RefillInterval: v.GetDuration("LOGIN_WINDOW"),
		Prefix:         v.GetString("LOGIN_LIMIT_PREFIX"),
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = 10 * time.Minute
	}
	def.TTL = time.Duration(def.Capacity) * def.RefillInterval
	return def
}
