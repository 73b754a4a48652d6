package enums

import (
	"fmt"
	"strings"
)

// StorageDriver selects the durable surface backing cart snapshots.
type StorageDriver string

const (
	StorageDriverRedis    StorageDriver = "redis"
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverMemory   StorageDriver = "memory"
)

var validStorageDrivers = []StorageDriver{
	StorageDriverRedis,
	StorageDriverPostgres,
	StorageDriverSQLite,
	StorageDriverMemory,
}

// String implements fmt.Stringer.
func (d StorageDriver) String() string {
	return string(d)
}

// IsValid reports whether the value is a known StorageDriver.
func (d StorageDriver) IsValid() bool {
	for _, candidate := range validStorageDrivers {
		if candidate == d {
			return true
		}
	}
	return false
}

// UsesSQL reports whether the driver is backed by GORM.
func (d StorageDriver) UsesSQL() bool {
	return d == StorageDriverPostgres || d == StorageDriverSQLite
}

// ParseStorageDriver converts raw input into a StorageDriver. Matching ignores case and surrounding space.
func ParseStorageDriver(value string) (StorageDriver, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStorageDrivers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage driver %q", value)
}
