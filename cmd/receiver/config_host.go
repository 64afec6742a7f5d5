//go:build !tinygo && !baremetal

package main

import (
	"flag"

	"github.com/openpedal/pedallink/config"
)

func loadConfig() (config.Device, error) {
	resolve := config.RegisterFlags()
	flag.Parse()
	return resolve()
}
