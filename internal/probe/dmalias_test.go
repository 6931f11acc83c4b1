package probe

import "testing"

func TestResolveDevSymlinksFollowsChain(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, root, "dev/dm-0", "")
	symlink(t, "../../dm-0", fixturePath(root, "dev/disk/by-id/alias"))

	got := resolveDevSymlinks(fixturePath(root, "dev/disk/by-id/alias"))
	want := fixturePath(root, "dev/dm-0")
	if got != want {
		t.Errorf("resolveDevSymlinks = %q, want %q", got, want)
	}
}

func TestResolveDevSymlinksNonSymlinkReturnsInput(t *testing.T) {
	root := t.TempDir()
	path := writeFixtureFile(t, root, "dev/sda1", "")

	if got := resolveDevSymlinks(path); got != path {
		t.Errorf("resolveDevSymlinks = %q, want %q", got, path)
	}
}

func TestCanonicalizeDMNameInPlainName(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, root, "dev/dm-0", "")
	writeFixtureFile(t, root, "dev/vgdata/lvroot", "")
	mapperDir := fixturePath(root, "dev/mapper")
	symlink(t, "../dm-0", fixturePath(root, "dev/mapper/vgdata-lvroot"))

	got := canonicalizeDMNameIn(mapperDir, fixturePath(root, "dev/dm-0"))
	if got != "vgdata/lvroot" {
		t.Errorf("canonicalizeDMNameIn = %q, want vgdata/lvroot", got)
	}
}

func TestCanonicalizeDMNameInNoMatchReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, root, "dev/dm-0", "")
	writeFixtureFile(t, root, "dev/dm-1", "")
	mapperDir := fixturePath(root, "dev/mapper")
	symlink(t, "../dm-1", fixturePath(root, "dev/mapper/other"))

	got := canonicalizeDMNameIn(mapperDir, fixturePath(root, "dev/dm-0"))
	if got != "" {
		t.Errorf("canonicalizeDMNameIn = %q, want empty", got)
	}
}

func TestCanonicalizeDMNameInMissingMapperDirReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	got := canonicalizeDMNameIn(fixturePath(root, "dev/mapper"), fixturePath(root, "dev/dm-0"))
	if got != "" {
		t.Errorf("canonicalizeDMNameIn = %q, want empty", got)
	}
}
