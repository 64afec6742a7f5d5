//go:build tinygo || baremetal

// Embedded builds have no flash/NVS-backed bond.Store in this module yet
// (see DESIGN.md); bonds are kept in memory and rebuilt by re-pairing
// after every reboot.
package main

import (
	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/bond/memstore"
	"github.com/openpedal/pedallink/config"
)

func newBondStore(cfg config.Device) (bond.Store, error) {
	return memstore.New(), nil
}
