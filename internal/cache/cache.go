// Package cache provides the keyed TTL result cache that fronts the
// analytics aggregations. Keys embed the method name first so a mutation
// can drop every cached variant of an operation with one prefix delete,
// regardless of the argument combinations call sites used.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// Species-level distributions churn faster than trends and rankings.
	ShortTTL   = 3 * time.Minute
	DefaultTTL = 5 * time.Minute
)

type Store interface {
	// Get unmarshals the cached value into dest and reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Key builds a stable cache key from the method name and its ordered
// arguments. Caller identity (role, region) must be among the arguments
// because results are visibility-scoped.
func Key(method string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "analytics:"+method)
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			parts = append(parts, "-")
		case string:
			parts = append(parts, v)
		case fmt.Stringer:
			parts = append(parts, v.String())
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				parts = append(parts, fmt.Sprintf("%v", v))
			} else {
				parts = append(parts, string(encoded))
			}
		}
	}
	return strings.Join(parts, ":")
}

// MethodPrefix is the invalidation prefix covering every argument
// combination of one method.
func MethodPrefix(method string) string {
	return "analytics:" + method + ":"
}
