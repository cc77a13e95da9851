package ink

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// UnmarshalBinary implements encoding.BinaryUnmarshaler for loading a stored
// gesture.
func (g *Gesture) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	if err := r.checkHeader(); err != nil {
		return err
	}

	nbStrokes, err := r.readNumber()
	if err != nil {
		return err
	}

	*g = make(Gesture, nbStrokes)
	for i := uint32(0); i < nbStrokes; i++ {
		stroke, err := r.readStroke()
		if err != nil {
			return err
		}
		(*g)[i] = stroke
	}

	return nil
}

type reader struct {
	bytes.Reader
	version Version
}

func newReader(data []byte) reader {
	br := bytes.NewReader(data)
	return reader{*br, V1}
}

func (r *reader) checkHeader() error {
	buf := make([]byte, HeaderLen)

	n, err := r.Read(buf)
	if err != nil {
		return err
	}

	if n != HeaderLen {
		return fmt.Errorf("wrong header size")
	}

	switch string(buf) {
	case HeaderV1:
		r.version = V1
	default:
		return fmt.Errorf("unknown header")
	}

	return nil
}

func (r *reader) readNumber() (uint32, error) {
	var nb uint32
	if err := binary.Read(r, binary.LittleEndian, &nb); err != nil {
		return 0, fmt.Errorf("wrong number read")
	}
	return nb, nil
}

func (r *reader) readFloat32() (float32, error) {
	var f float32
	if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
		return 0, fmt.Errorf("wrong float read")
	}
	return f, nil
}

func (r *reader) readStroke() (Stroke, error) {
	var stroke Stroke

	width, err := r.readFloat32()
	if err != nil {
		return stroke, fmt.Errorf("failed to read stroke")
	}
	stroke.Width = float64(width)

	nbPoints, err := r.readNumber()
	if err != nil {
		return stroke, err
	}

	if nbPoints == 0 {
		return stroke, nil
	}

	stroke.Points = make([]Point, nbPoints)
	for i := uint32(0); i < nbPoints; i++ {
		p, err := r.readPoint()
		if err != nil {
			return stroke, err
		}
		stroke.Points[i] = p
	}

	return stroke, nil
}

func (r *reader) readPoint() (Point, error) {
	var point Point

	x, err := r.readFloat32()
	if err != nil {
		return point, fmt.Errorf("failed to read point")
	}
	y, err := r.readFloat32()
	if err != nil {
		return point, fmt.Errorf("failed to read point")
	}

	point.X = float64(x)
	point.Y = float64(y)
	return point, nil
}
