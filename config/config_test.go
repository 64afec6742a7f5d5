package config

import "testing"

func TestDefaultsMatchProtocolTimers(t *testing.T) {
	d := Defaults()
	if d.InitialPingWait != DefaultInitialPingWait {
		t.Errorf("InitialPingWait = %v", d.InitialPingWait)
	}
	if d.GracePeriod != DefaultGracePeriod {
		t.Errorf("GracePeriod = %v", d.GracePeriod)
	}
	if d.BeaconInterval != DefaultBeaconInterval {
		t.Errorf("BeaconInterval = %v", d.BeaconInterval)
	}
	if d.AliveResponseTimeout != DefaultAliveResponseTimeout {
		t.Errorf("AliveResponseTimeout = %v", d.AliveResponseTimeout)
	}
	if d.DiscoveryResponseWait != DefaultDiscoveryResponseWait {
		t.Errorf("DiscoveryResponseWait = %v", d.DiscoveryResponseWait)
	}
}
