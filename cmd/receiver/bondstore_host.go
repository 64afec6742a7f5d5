//go:build !tinygo && !baremetal

// Host builds persist bonds to a gob file (bond/filestore) and, when
// -redis_server is set, mirror every write to Redis so a supervisor
// process can watch which pedals are bonded without touching the
// device's storage directly. Grounded on librescoot-ecu-service's
// main.go: an optional Redis address flag gates whether the mirror is
// wired in at all.
package main

import (
	"flag"

	"github.com/go-redis/redis/v8"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/bond/filestore"
	"github.com/openpedal/pedallink/bond/redismirror"
	"github.com/openpedal/pedallink/config"
)

var redisServer = flag.String("redis_server", "", "optional host:port of a Redis server to mirror bond state into")

func newBondStore(cfg config.Device) (bond.Store, error) {
	path := cfg.BondStorePath
	if path == "" {
		path = "pedallink-bonds.gob"
	}
	store := bond.Store(filestore.New(path))

	if *redisServer == "" {
		return store, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: *redisServer})
	return redismirror.New(store, rdb), nil
}
