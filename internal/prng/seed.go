package prng

import (
	"runtime/debug"
	"time"
)

// DefaultSeed is used when no build information is available, e.g. in tests.
const DefaultSeed uint64 = 0x323a33343a353600 // "12:34:56\x00"

// buildTime may be set at link time:
//
//	go build -ldflags "-X github.com/born-ml/ffnet/internal/prng.buildTime=15:04:05"
var buildTime string

// SeedFromClock packs the bytes of a clock string such as "15:04:05",
// followed by a terminating zero byte, into a uint64, big-endian. Only the
// last eight bytes survive, so the leading hour digit of "HH:MM:SS" is lost.
//
// The zero byte keeps the seconds digit out of bit 0, which the generator
// forces to 1.
func SeedFromClock(clock string) uint64 {
	var seed uint64
	for i := 0; i < len(clock); i++ {
		seed = seed<<8 | uint64(clock[i])
	}
	return seed << 8
}

// BuildSeed returns a seed that is fixed for one binary.
//
// The link-time buildTime wins; set it to the current time to get a new seed
// on every build:
//
//	go build -ldflags "-X github.com/born-ml/ffnet/internal/prng.buildTime=$(date +%T)"
//
// Otherwise the VCS commit time recorded by the go command is used, so
// rebuilding the same commit reuses its seed. DefaultSeed is the last resort.
func BuildSeed() uint64 {
	if buildTime != "" {
		return SeedFromClock(buildTime)
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return DefaultSeed
	}
	return seedFromSettings(info.Settings)
}

// seedFromSettings derives a seed from the vcs.time build setting.
func seedFromSettings(settings []debug.BuildSetting) uint64 {
	for _, s := range settings {
		if s.Key != "vcs.time" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, s.Value)
		if err != nil {
			break
		}
		return SeedFromClock(ts.UTC().Format(time.TimeOnly))
	}
	return DefaultSeed
}
