package ink

import (
	"bytes"
	"encoding/binary"
)

// File format versions. The header is fixed width; trailing spaces pad the
// version line.
const (
	HeaderV1 = "inktex ink file, version=1      "

	HeaderLen = len(HeaderV1)
)

// Version identifies the ink file format revision.
type Version int

// V1 is the only format so far: a stroke count followed by width-prefixed
// point runs, all little endian, coordinates as float32.
const V1 Version = 1

// MarshalBinary implements encoding.BinaryMarshaler for storing a captured
// gesture.
func (g Gesture) MarshalBinary() (data []byte, err error) {
	w := new(writer)

	w.writeHeader()
	w.writeNumber(len(g))

	for _, stroke := range g {
		w.writeStroke(stroke)
	}
	data = w.Bytes()

	return
}

type writer struct {
	b bytes.Buffer
}

func (w *writer) Bytes() []byte {
	return w.b.Bytes()
}

func (w *writer) writeHeader() {
	w.b.Write([]byte(HeaderV1))
}

func (w *writer) writeNumber(n int) {
	binary.Write(&w.b, binary.LittleEndian, uint32(n))
}

func (w *writer) writeFloat32(f float32) {
	binary.Write(&w.b, binary.LittleEndian, f)
}

func (w *writer) writeStroke(stroke Stroke) {
	w.writeFloat32(float32(stroke.Width))
	w.writeNumber(len(stroke.Points))

	for _, point := range stroke.Points {
		w.writePoint(point)
	}
}

func (w *writer) writePoint(point Point) {
	w.writeFloat32(float32(point.X))
	w.writeFloat32(float32(point.Y))
}
