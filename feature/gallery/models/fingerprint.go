package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
)

// Fingerprint hashes the persisted content of the snapshot. Two snapshots
// with the same fingerprint reconcile to the same store state, so it is the
// coalescing key of the save queue. Ready flags are ignored.
func (d *DirectorySnapshot) Fingerprint() string {
	h := sha256.New()
	writeDirectory(h, d, true)
	return hex.EncodeToString(h.Sum(nil))
}

func writeDirectory(h hash.Hash, d *DirectorySnapshot, recurse bool) {
	fmt.Fprintf(h, "dir:%q:%q:%d:%d:", d.Name, d.Path, d.LastModified, d.MediaCount)
	if d.LastScanned != nil {
		fmt.Fprintf(h, "%d", *d.LastScanned)
	} else {
		h.Write([]byte("nil"))
	}
	h.Write([]byte{'\n'})

	for _, m := range d.Media {
		writeMedia(h, m)
	}
	for _, f := range d.MetaFiles {
		fmt.Fprintf(h, "file:%q:%d\n", f.Name, f.Size)
	}
	if !recurse {
		return
	}
	for _, c := range d.Directories {
		writeDirectory(h, c, false)
	}
}

func writeMedia(h hash.Hash, m *MediaRecord) {
	fmt.Fprintf(h, "media:%q:%s:", m.Name, m.Kind)
	// Metadata structs only hold plain fields, marshalling cannot fail
	if m.Photo != nil {
		b, _ := json.Marshal(m.Photo)
		h.Write(b)
	}
	if m.Video != nil {
		b, _ := json.Marshal(m.Video)
		h.Write(b)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(h, "|face:%d,%d,%d,%d:%q", f.Box.Top, f.Box.Left, f.Box.Width, f.Box.Height, f.Name)
	}
	h.Write([]byte{'\n'})
}
