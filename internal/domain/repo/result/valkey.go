package result

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
)

const (
	fieldID       = "id"
	fieldType     = "type"
	fieldHost     = "host"
	fieldAlert    = "alert"
	fieldDuration = "duration_us"
)

// KEYS[1] row, KEYS[2] id index. ARGV id, type, host.
var insertScript = valkey.NewLuaScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'type', ARGV[2], 'host', ARGV[3], 'alert', '0')
redis.call('SADD', KEYS[2], ARGV[1])
return 1
`)

// KEYS[1] row, KEYS[2] alert index. ARGV duration, alert, id.
var updateScript = valkey.NewLuaScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('HEXISTS', KEYS[1], 'duration_us') == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'duration_us', ARGV[1], 'alert', ARGV[2])
if ARGV[2] == '1' then
	redis.call('SADD', KEYS[2], ARGV[3])
end
return 1
`)

// KEYS[1] row.
var durationUnsetScript = valkey.NewLuaScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('HEXISTS', KEYS[1], 'duration_us') == 1 then
	return 0
end
return 1
`)

// ValkeyStore keeps one hash per id, plus an index of all ids and an index of alerting ids.
// Conditional writes run as Lua scripts so they are atomic on the server.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

func NewValkeyStore(client valkey.Client, prefix string) ValkeyStore {
	return ValkeyStore{
		client: client,
		prefix: prefix,
	}
}

func (r ValkeyStore) EnsureSchema(ctx context.Context) error {
	return nil
}

func (r ValkeyStore) Reset(ctx context.Context) error {
	ids, err := r.members(ctx, r.idsKey())
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+2)
	for _, id := range ids {
		keys = append(keys, r.rowKey(id))
	}

	keys = append(keys, r.idsKey(), r.alertsKey())

	command := r.client.B().Del().Key(keys...).Build()

	err = r.client.Do(ctx, command).Error()
	if err != nil {
		return r.wrapError(err, "failed to delete results")
	}

	return nil
}

func (r ValkeyStore) Exists(ctx context.Context, id string) (bool, error) {
	command := r.client.B().Exists().Key(r.rowKey(id)).Build()

	n, err := r.client.Do(ctx, command).AsInt64()
	if err != nil {
		return false, r.wrapError(err, "failed to check existence of %s", id)
	}

	return n == 1, nil
}

func (r ValkeyStore) DurationUnset(ctx context.Context, id string) (bool, error) {
	n, err := durationUnsetScript.Exec(ctx, r.client, []string{r.rowKey(id)}, nil).AsInt64()
	if err != nil {
		return false, r.wrapError(err, "failed to check duration of %s", id)
	}

	return n == 1, nil
}

func (r ValkeyStore) Insert(ctx context.Context, result entity.Result) (bool, error) {
	keys := []string{r.rowKey(result.ID), r.idsKey()}
	args := []string{result.ID, result.Type, result.Host}

	n, err := insertScript.Exec(ctx, r.client, keys, args).AsInt64()
	if err != nil {
		return false, r.wrapError(err, "failed to insert %s", result.ID)
	}

	return n == 1, nil
}

func (r ValkeyStore) UpdateDurationAndAlert(ctx context.Context, id string, duration time.Duration, alert bool) (bool, error) {
	keys := []string{r.rowKey(id), r.alertsKey()}
	args := []string{strconv.FormatInt(duration.Microseconds(), 10), formatBool(alert), id}

	n, err := updateScript.Exec(ctx, r.client, keys, args).AsInt64()
	if err != nil {
		return false, r.wrapError(err, "failed to update %s", id)
	}

	return n == 1, nil
}

func (r ValkeyStore) QueryAlerts(ctx context.Context) ([]entity.Result, error) {
	return r.query(ctx, r.alertsKey())
}

func (r ValkeyStore) QueryAll(ctx context.Context) ([]entity.Result, error) {
	return r.query(ctx, r.idsKey())
}

func (r ValkeyStore) query(ctx context.Context, indexKey string) ([]entity.Result, error) {
	ids, err := r.members(ctx, indexKey)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, nil
	}

	slices.Sort(ids)

	commands := make([]valkey.Completed, 0, len(ids))
	for _, id := range ids {
		commands = append(commands, r.client.B().Hgetall().Key(r.rowKey(id)).Build())
	}

	ret := make([]entity.Result, 0, len(ids))

	for i, resp := range r.client.DoMulti(ctx, commands...) {
		fields, err := resp.AsStrMap()
		if err != nil {
			return nil, r.wrapError(err, "failed to get result %s", ids[i])
		}

		// Row deleted between the index read and the hash read
		if len(fields) == 0 {
			continue
		}

		result, err := mapToEntity(fields)
		if err != nil {
			return nil, repo.NewOperationError(err, "unexpected content for %s", ids[i])
		}

		ret = append(ret, result)
	}

	return ret, nil
}

func (r ValkeyStore) members(ctx context.Context, key string) ([]string, error) {
	command := r.client.B().Smembers().Key(key).Build()

	ret, err := r.client.Do(ctx, command).AsStrSlice()
	if err != nil {
		return nil, r.wrapError(err, "failed to list %s", key)
	}

	return ret, nil
}

func (r ValkeyStore) rowKey(id string) string {
	return fmt.Sprintf("%s:result:%s", r.prefix, id)
}

func (r ValkeyStore) idsKey() string {
	return fmt.Sprintf("%s:results", r.prefix)
}

func (r ValkeyStore) alertsKey() string {
	return fmt.Sprintf("%s:alerts", r.prefix)
}

func (r ValkeyStore) wrapError(err error, reason string, args ...interface{}) error {
	if r.isRetryable(err) {
		return repo.NewConnectionError(err, reason, args...)
	}

	return repo.NewOperationError(err, reason, args...)
}

func (r ValkeyStore) isRetryable(err error) bool {
	// Network error
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Valkey specfic error
	vErr, isValkeyError := valkey.IsValkeyErr(err)
	if !isValkeyError {
		return false
	}

	return vErr.IsTryAgain() || vErr.IsClusterDown()
}

func mapToEntity(fields map[string]string) (entity.Result, error) {
	ret := entity.Result{
		ID:    fields[fieldID],
		Type:  fields[fieldType],
		Host:  fields[fieldHost],
		Alert: fields[fieldAlert] == "1",
	}

	raw, ok := fields[fieldDuration]
	if !ok {
		return ret, nil
	}

	us, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ret, fmt.Errorf("invalid %s %q: %w", fieldDuration, raw, err)
	}

	d := time.Duration(us) * time.Microsecond
	ret.Duration = &d

	return ret, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
