// Package config reads typed settings from the environment, optionally seeded from .env
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"diwan/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a view over env vars sharing a prefix, e.g. SPOTLIGHT_
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix narrows the view; prefixes stack
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.prefix + k)) }

// LoadDotEnv loads the files (".env" by default) without overriding set vars; missing files are skipped
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// may parses key with parse; empty gives def, garbage gives def and a warning
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.prefix+key).Str("value", s).Interface("default", def).Msg("unparsable env; using default")
		return def
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayFirst is the first set key, or def
func (c Conf) MayFirst(def string, keys ...string) string {
	for _, k := range keys {
		if v := c.lookup(k); v != "" {
			return v
		}
	}
	return def
}

// MayCSV splits a comma list, dropping blanks
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum is the lowercased value when it is one of allowed; anything else panics at boot
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.prefix+key).Str("value", v).Strs("allowed", allowed).Msg("env value not allowed")
	return ""
}
