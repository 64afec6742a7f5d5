// Package redismirror wraps a bond.Store and mirrors every save to a Redis
// hash, for fleets where a supervisor process wants live visibility into
// which pedals are bonded without polling the device's flash directly.
// Grounded on librescoot-ecu-service's ipc_tx.go: a pipelined HSet per
// update plus a Publish so subscribers can react without polling.
package redismirror

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/wire"
)

const (
	hashKey        = "pedallink-bonds"
	updateChannel  = "pedallink-bonds updated"
	debugSinkField = "debug-sink"
)

// Store mirrors another bond.Store's writes into Redis while delegating
// all reads and the authoritative writes to it.
type Store struct {
	inner bond.Store
	rdb   *redis.Client
	ctx   context.Context
}

// New wraps inner, mirroring its writes to rdb under hashKey.
func New(inner bond.Store, rdb *redis.Client) *Store {
	return &Store{inner: inner, rdb: rdb, ctx: context.Background()}
}

func (s *Store) LoadRecords() ([bond.MaxRecords]bond.Record, int, error) {
	return s.inner.LoadRecords()
}

func (s *Store) LoadDebugSink() (wire.MAC, bool, error) {
	return s.inner.LoadDebugSink()
}

func (s *Store) SaveRecords(records [bond.MaxRecords]bond.Record, count int) error {
	if err := s.inner.SaveRecords(records, count); err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	fields := map[string]interface{}{"paired-count": count}
	for i, r := range records {
		if r.MAC.IsZero() {
			pipe.HDel(s.ctx, hashKey, fmt.Sprintf("slot%d:mac", i), fmt.Sprintf("slot%d:mode", i))
			continue
		}
		fields[fmt.Sprintf("slot%d:mac", i)] = r.MAC.String()
		fields[fmt.Sprintf("slot%d:mode", i)] = r.PedalMode.String()
	}
	pipe.HSet(s.ctx, hashKey, fields)

	if _, err := pipe.Exec(s.ctx); err != nil {
		return fmt.Errorf("redismirror: mirror records: %w", err)
	}
	if err := s.rdb.Publish(s.ctx, updateChannel, nil).Err(); err != nil {
		return fmt.Errorf("redismirror: publish update: %w", err)
	}
	return nil
}

func (s *Store) SaveDebugSink(mac wire.MAC) error {
	if err := s.inner.SaveDebugSink(mac); err != nil {
		return err
	}
	if err := s.rdb.HSet(s.ctx, hashKey, debugSinkField, mac.String()).Err(); err != nil {
		return fmt.Errorf("redismirror: mirror debug sink: %w", err)
	}
	return nil
}
