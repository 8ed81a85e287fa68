package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// incrementScript reads the field with Counter's rules (quoted JSON strings
// and garbage read as 0, negatives clamp to 0), adds one and writes it back
// in a single server-side step.
var incrementScript = redis.NewScript(`
local raw = redis.call('HGET', KEYS[1], ARGV[1])
local n = 0
if raw then
	n = tonumber((string.gsub(raw, '"', ''))) or 0
end
if n < 0 then n = 0 end
n = math.floor(n) + 1
redis.call('HSET', KEYS[1], ARGV[1], n)
return n
`)

// RedisStore keeps each partition in a hash whose field values are JSON.
//
//	{prefix}account:{id}:private  free_usage -> 3, plan -> "free"
//	{prefix}account:{id}:public   role -> "member", tags -> ["beta"]
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(accountID, partition string) string {
	return fmt.Sprintf("%saccount:%s:%s", s.prefix, accountID, partition)
}

func (s *RedisStore) Get(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, ErrEmptyAccountID
	}

	pipe := s.client.Pipeline()
	priv := pipe.HGetAll(ctx, s.key(accountID, "private"))
	pub := pipe.HGetAll(ctx, s.key(accountID, "public"))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Account{}, errors.Join(ErrLookupFailed, err)
	}

	return Account{
		ID:      accountID,
		Private: decodeHash(priv.Val()),
		Public:  decodeHash(pub.Val()),
	}, nil
}

func (s *RedisStore) UpdatePrivate(ctx context.Context, accountID string, fields map[string]any) error {
	if accountID == "" {
		return ErrEmptyAccountID
	}
	if len(fields) == 0 {
		return nil
	}
	values := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Join(ErrUpdateFailed, fmt.Errorf("field %q: %w", k, err))
		}
		values = append(values, k, string(raw))
	}
	if err := s.client.HSet(ctx, s.key(accountID, "private"), values...).Err(); err != nil {
		return errors.Join(ErrUpdateFailed, err)
	}
	return nil
}

func (s *RedisStore) IncrementPrivate(ctx context.Context, accountID, key string) (int64, error) {
	if accountID == "" {
		return 0, ErrEmptyAccountID
	}
	n, err := incrementScript.Run(ctx, s.client, []string{s.key(accountID, "private")}, key).Int64()
	if err != nil {
		return 0, errors.Join(ErrIncrementFailed, err)
	}
	return n, nil
}

// decodeHash decodes JSON field values; anything that is not valid JSON is
// kept as the raw string.
func decodeHash(h map[string]string) map[string]any {
	out := make(map[string]any, len(h))
	for k, raw := range h {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			out[k] = raw
			continue
		}
		out[k] = v
	}
	return out
}
