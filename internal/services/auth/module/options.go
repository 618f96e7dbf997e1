package module

import (
	"overflowd/internal/platform/config"
	"overflowd/internal/platform/logger"
)

// minSecretLen is the spec's floor for HMAC_SECRET and ADMIN_TOKEN (§6.3/§10)
const minSecretLen = 32

// Options carries the two shared secrets the authenticator compares against
type Options struct {
	HMACSecret []byte
	AdminToken []byte
}

// FromConfig reads the flat (unprefixed) HMAC_SECRET and ADMIN_TOKEN keys
// per §6.3. Both are required and must be at least minSecretLen chars; a
// too-short secret fails loudly at startup rather than weakening signature/
// admin-token verification at request time (§10)
func FromConfig(cfg config.Conf) Options {
	return Options{
		HMACSecret: []byte(mustSecret(cfg, "HMAC_SECRET")),
		AdminToken: []byte(mustSecret(cfg, "ADMIN_TOKEN")),
	}
}

func mustSecret(cfg config.Conf, key string) string {
	v := cfg.MustString(key)
	if len(v) < minSecretLen {
		logger.Get().Panic().Str("key", key).Int("len", len(v)).Int("min", minSecretLen).
			Msg("env value too short")
	}
	return v
}
