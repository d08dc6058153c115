package persist

import "encoding/binary"

// Fixed-width little-endian field codecs. Every on-disk integer in this
// package goes through these, mirroring the byte-level discipline a
// memory-mapped format needs: no field is ever read or written through a
// struct cast over the raw mapping.

func getUint16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off : off+2]) }
func putUint16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:off+2], v) }

func getUint32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off : off+4]) }
func putUint32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:off+4], v) }

func getUint64(b []byte, off int) uint64 { return binary.LittleEndian.Uint64(b[off : off+8]) }
func putUint64(b []byte, off int, v uint64) { binary.LittleEndian.PutUint64(b[off:off+8], v) }

func getInt32(b []byte, off int) int32 { return int32(getUint32(b, off)) }
func putInt32(b []byte, off int, v int32) { putUint32(b, off, uint32(v)) }

func getInt64(b []byte, off int) int64 { return int64(getUint64(b, off)) }
func putInt64(b []byte, off int, v int64) { putUint64(b, off, uint64(v)) }
