package hdf5

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/adview/internal/conv"
)

var (
	errNotHeap         = errors.New("not a global heap collection")
	gcolSignature      = []byte("GCOL")
	errHeapObjectWidth = errors.New("unsupported heap reference width")
)

// heapReader resolves variable-length elements through the global heap.
// Collections are remembered for the duration of one read.
type heapReader struct {
	r           io.ReaderAt
	offsetSize  int
	lengthSize  int
	collections map[uint64]map[uint32][]byte
}

func newHeapReader(r io.ReaderAt, offsetSize, lengthSize int) *heapReader {
	return &heapReader{
		r:           r,
		offsetSize:  offsetSize,
		lengthSize:  lengthSize,
		collections: make(map[uint64]map[uint32][]byte),
	}
}

// element decodes one stored variable-length element.
//
// HDF5 stores a sequence length (4 bytes), the collection address and the
// object index (4 bytes). Files written by scigolib/hdf5 store the address
// (8 bytes), the index (4 bytes) and 4 bytes of padding instead.
func (h *heapReader) element(elem []byte) ([]byte, error) {
	if n := 4 + h.offsetSize + 4; len(elem) >= n {
		length := binary.LittleEndian.Uint32(elem[0:4])
		addr, err := readUint(elem[4:4+h.offsetSize], h.offsetSize)
		if err != nil {
			return nil, err
		}
		index := binary.LittleEndian.Uint32(elem[4+h.offsetSize : n])
		if addr == 0 && length == 0 {
			return nil, nil
		}
		obj, err := h.object(addr, index)
		if err == nil {
			if uint64(length) < uint64(len(obj)) {
				obj = obj[:length]
			}
			return obj, nil
		}
		if !errors.Is(err, errNotHeap) {
			return nil, err
		}
	}

	if len(elem) < 12 {
		return nil, fmt.Errorf("variable-length element of %d bytes", len(elem))
	}
	addr := binary.LittleEndian.Uint64(elem[0:8])
	if addr == 0 {
		return nil, nil
	}
	obj, err := h.object(addr, binary.LittleEndian.Uint32(elem[8:12]))
	if errors.Is(err, errNotHeap) {
		return nil, fmt.Errorf("heap reference at 0x%X: %w", addr, err)
	}
	return obj, err
}

func (h *heapReader) object(addr uint64, index uint32) ([]byte, error) {
	objects, ok := h.collections[addr]
	if !ok {
		var err error
		if objects, err = h.collection(addr); err != nil {
			return nil, err
		}
		h.collections[addr] = objects
	}
	obj, ok := objects[index]
	if !ok {
		return nil, fmt.Errorf("global heap object %d not found at 0x%X", index, addr)
	}
	return obj, nil
}

// collection parses a global heap collection. Any address that does not
// hold a readable "GCOL" header yields errNotHeap.
func (h *heapReader) collection(addr uint64) (map[uint32][]byte, error) {
	off, err := conv.Uint64ToInt64(addr)
	if err != nil {
		return nil, errNotHeap
	}
	header := make([]byte, 8+h.lengthSize)
	if _, err := h.r.ReadAt(header, off); err != nil {
		return nil, errNotHeap
	}
	if string(header[0:4]) != string(gcolSignature) || header[4] != 1 {
		return nil, errNotHeap
	}
	size, err := readUint(header[8:], h.lengthSize)
	if err != nil {
		return nil, err
	}
	n, err := conv.Uint64ToInt(size)
	if err != nil || n < len(header) {
		return nil, fmt.Errorf("global heap at 0x%X: invalid collection size %d", addr, size)
	}
	data := make([]byte, n)
	if _, err := h.r.ReadAt(data, off); err != nil {
		return nil, fmt.Errorf("global heap at 0x%X: %w", addr, err)
	}

	objects := make(map[uint32][]byte)
	pos := align8(len(header))
	objHeader := 8 + h.lengthSize
	for pos+objHeader <= len(data) {
		id := binary.LittleEndian.Uint16(data[pos : pos+2])
		objSize, err := readUint(data[pos+8:pos+objHeader], h.lengthSize)
		if err != nil {
			return nil, err
		}
		sz, err := conv.Uint64ToInt(objSize)
		if err != nil {
			return nil, fmt.Errorf("global heap at 0x%X: %w", addr, err)
		}
		start := pos + objHeader
		if id == 0 {
			// Free space runs to the end of the collection.
			break
		}
		if sz > len(data)-start {
			return nil, fmt.Errorf("global heap at 0x%X: object %d overruns collection", addr, id)
		}
		objects[uint32(id)] = data[start : start+sz]
		pos = start + align8(sz)
	}
	return objects, nil
}

func readUint(b []byte, width int) (uint64, error) {
	switch width {
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", errHeapObjectWidth, width)
	}
}

func align8(n int) int {
	if r := n % 8; r != 0 {
		return n + 8 - r
	}
	return n
}
