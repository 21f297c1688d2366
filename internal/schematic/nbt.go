package schematic

import (
	"encoding/binary"
	"io"
	"math"
)

// NBT tag types of the Java edition binary format.
const (
	tagEnd       = 0
	tagByte      = 1
	tagShort     = 2
	tagInt       = 3
	tagByteArray = 7
	tagString    = 8
	tagList      = 9
	tagCompound  = 10
	tagIntArray  = 11
)

// nbtWriter emits big-endian named binary tags in the exact order of the
// method calls, which keeps the produced document byte-deterministic.
// The first error sticks and turns all further writes into no-ops.
type nbtWriter struct {
	w   io.Writer
	err error
}

func newNBTWriter(w io.Writer) *nbtWriter {
	return &nbtWriter{w: w}
}

func (n *nbtWriter) write(data []byte) {
	if n.err != nil {
		return
	}
	_, n.err = n.w.Write(data)
}

func (n *nbtWriter) writeInt16(v int16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	n.write(buf[:])
}

func (n *nbtWriter) writeInt32(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	n.write(buf[:])
}

func (n *nbtWriter) writeString(s string) {
	if len(s) > math.MaxUint16 {
		s = s[:math.MaxUint16]
	}
	n.writeInt16(int16(len(s)))
	n.write([]byte(s))
}

// name writes a tag type and name header.
func (n *nbtWriter) name(tagType byte, name string) {
	n.write([]byte{tagType})
	n.writeString(name)
}

// BeginCompound opens a named compound tag. It has to be closed with End.
func (n *nbtWriter) BeginCompound(name string) {
	n.name(tagCompound, name)
}

// End closes the innermost compound tag, named or as a list element.
func (n *nbtWriter) End() {
	n.write([]byte{tagEnd})
}

// BeginList opens a named list tag of count elements of the given type.
// Empty lists carry the end tag as element type, matching the vanilla writer.
func (n *nbtWriter) BeginList(name string, elementType byte, count int) {
	n.name(tagList, name)
	if count == 0 {
		elementType = tagEnd
	}
	n.write([]byte{elementType})
	n.writeInt32(int32(count))
}

// Byte writes a named byte tag.
func (n *nbtWriter) Byte(name string, v int8) {
	n.name(tagByte, name)
	n.write([]byte{byte(v)})
}

// Short writes a named 16 bit integer tag.
func (n *nbtWriter) Short(name string, v int16) {
	n.name(tagShort, name)
	n.writeInt16(v)
}

// Int writes a named 32 bit integer tag.
func (n *nbtWriter) Int(name string, v int32) {
	n.name(tagInt, name)
	n.writeInt32(v)
}

// String writes a named string tag.
func (n *nbtWriter) String(name, v string) {
	n.name(tagString, name)
	n.writeString(v)
}

// ByteArray writes a named byte array tag.
func (n *nbtWriter) ByteArray(name string, data []byte) {
	n.name(tagByteArray, name)
	n.writeInt32(int32(len(data)))
	n.write(data)
}

// IntArray writes a named 32 bit integer array tag.
func (n *nbtWriter) IntArray(name string, data []int32) {
	n.name(tagIntArray, name)
	n.writeInt32(int32(len(data)))
	for _, v := range data {
		n.writeInt32(v)
	}
}

// Err returns the first error encountered while writing.
func (n *nbtWriter) Err() error {
	return n.err
}
