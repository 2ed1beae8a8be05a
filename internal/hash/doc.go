// Package hash provides the checksum used to protect persisted basis snapshots.
//
// Snapshots carry a CRC32-Castagnoli (CRC32C) of their uncompressed payload.
// Go's crc32 package uses the SSE4.2 and ARM CRC instructions for this
// polynomial when available.
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(payload)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
