package probe

import (
	"os"
	"path/filepath"
	"strings"
)

// resolveDevSymlinks follows device symlinks down to the real /dev/<x>
// entry, canonicalizing against the parent directory at each hop
// (original_source/src/mib_disks.rs resolve_dev_symlinks). path may point
// anywhere on disk, real /dev or a test fixture tree — there is no
// hardcoded root to override.
func resolveDevSymlinks(path string) string {
	for {
		target, err := os.Readlink(path)
		if err != nil {
			return path
		}
		joined := filepath.Join(filepath.Dir(path), target)
		resolved, err := filepath.EvalSymlinks(joined)
		if err != nil {
			return joined
		}
		path = resolved
	}
}

// canonicalizeDMName searches /dev/mapper for a symlink resolving to
// devPath (a /dev/dm-N path) and returns a human-friendly alias. A mapper
// name containing "-" is a logical volume: NET-SNMP's own convention
// (mirrored here from original_source/src/mib_disks.rs
// canonicalize_dm_name) escapes a literal "-" in the vg/lv name as "--", so
// splitting on the first single "-" and un-escaping each half recovers
// "<vg>/<lv>". Any other mapper name is returned as-is. Returns "" (and
// lets the caller fall back to the raw device name) when nothing matches.
func canonicalizeDMName(devPath string) string {
	return canonicalizeDMNameIn("/dev/mapper", devPath)
}

// canonicalizeDMNameIn is canonicalizeDMName with the mapper directory
// overridable, so tests can point it at a fixture tree instead of the real
// /dev/mapper. The vg/lv existence check walks up one directory from
// mapperDir, matching the real tree's /dev/mapper next to /dev/<vg>/<lv>.
func canonicalizeDMNameIn(mapperDir, devPath string) string {
	entries, err := os.ReadDir(mapperDir)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		aliasPath := filepath.Join(mapperDir, entry.Name())
		target, err := os.Readlink(aliasPath)
		if err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(filepath.Join(mapperDir, target))
		if err != nil {
			continue
		}
		if resolved != devPath {
			continue
		}

		name := entry.Name()
		sep := -1
		for i := 0; i < len(name); i++ {
			if name[i] != '-' {
				continue
			}
			if i+1 < len(name) && name[i+1] == '-' {
				i++
				continue
			}
			sep = i
			break
		}
		if sep >= 0 {
			vg := strings.ReplaceAll(name[:sep], "--", "-")
			lv := strings.ReplaceAll(name[sep+1:], "--", "-")
			lvPath := vg + "/" + lv
			if _, err := os.Stat(filepath.Join(filepath.Dir(mapperDir), lvPath)); err == nil {
				return lvPath
			}
		}
		return name
	}
	return ""
}
