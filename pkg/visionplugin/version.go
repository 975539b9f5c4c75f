package visionplugin

import (
	"fmt"
	"strconv"
	"strings"
)

// MinCompatibleVersion is the oldest protocol version hosts accept.
const MinCompatibleVersion = "1.0.0"

// Version is a parsed MAJOR.MINOR.PATCH protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a version string in "MAJOR.MINOR.PATCH" format.
func ParseVersion(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid %s version: %s", name, parts[i])
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// less reports whether v precedes o.
func (v Version) less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// CheckCompatible returns an error unless a plugin speaking pluginVersion
// can serve this host. The major version must match ProtocolVersion and the
// version must not predate MinCompatibleVersion; newer minor and patch
// versions are accepted.
func CheckCompatible(pluginVersion string) error {
	plugin, err := ParseVersion(pluginVersion)
	if err != nil {
		return fmt.Errorf("failed to parse plugin version: %w", err)
	}
	current, err := ParseVersion(ProtocolVersion)
	if err != nil {
		return fmt.Errorf("failed to parse current protocol version: %w", err)
	}
	minimum, err := ParseVersion(MinCompatibleVersion)
	if err != nil {
		return fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}

	if plugin.Major != current.Major {
		return fmt.Errorf("incompatible major version: plugin is %s, host requires %d.x.x", plugin, current.Major)
	}
	if plugin.less(minimum) {
		return fmt.Errorf("plugin version %s is too old, minimum required is %s", plugin, minimum)
	}
	return nil
}
