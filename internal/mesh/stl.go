package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	binarySTLHeaderSize   = 80
	binarySTLTriangleSize = 50 // 12 float32 + uint16 атрибут
)

// DecodeSTL разбирает STL в бинарном или текстовом формате.
// Формат определяется по заголовку: текстовые файлы начинаются с "solid"
// и содержат ключевое слово "facet".
func DecodeSTL(data []byte) (*Mesh, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) && bytes.Contains(data, []byte("facet")) {
		return decodeASCIISTL(data)
	}
	return decodeBinarySTL(data)
}

// decodeBinarySTL разбирает бинарный STL: 80 байт заголовка,
// uint32 число треугольников, по 50 байт на треугольник.
func decodeBinarySTL(data []byte) (*Mesh, error) {
	if len(data) < binarySTLHeaderSize+4 {
		return nil, fmt.Errorf("binary STL too short: %d bytes", len(data))
	}

	count := binary.LittleEndian.Uint32(data[binarySTLHeaderSize:])
	expected := binarySTLHeaderSize + 4 + int(count)*binarySTLTriangleSize
	if len(data) < expected {
		return nil, fmt.Errorf("binary STL truncated: expected %d bytes, got %d", expected, len(data))
	}
	if count == 0 {
		return nil, ErrEmptyMesh
	}

	m := &Mesh{
		Vertices: make([]Vector, 0, count*3),
		Faces:    make([]Face, 0, count),
	}

	offset := binarySTLHeaderSize + 4
	for i := 0; i < int(count); i++ {
		// Пропускаем нормаль (3 float32), читаем три вершины
		tri := data[offset : offset+binarySTLTriangleSize]
		base := len(m.Vertices)
		for v := 0; v < 3; v++ {
			p := 12 + v*12
			m.Vertices = append(m.Vertices, Vector{
				float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[p:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[p+4:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[p+8:]))),
			})
		}
		m.Faces = append(m.Faces, Face{base, base + 1, base + 2})
		offset += binarySTLTriangleSize
	}

	return m, nil
}

// decodeASCIISTL разбирает текстовый STL по строкам "vertex x y z"
func decodeASCIISTL(data []byte) (*Mesh, error) {
	m := &Mesh{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var faceVerts []Vector
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed vertex line: %q", scanner.Text())
			}
			var v Vector
			for i := 0; i < 3; i++ {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i+1], err)
				}
				v[i] = value
			}
			faceVerts = append(faceVerts, v)
		case "endfacet":
			if len(faceVerts) != 3 {
				return nil, fmt.Errorf("facet with %d vertices, expected 3", len(faceVerts))
			}
			base := len(m.Vertices)
			m.Vertices = append(m.Vertices, faceVerts...)
			m.Faces = append(m.Faces, Face{base, base + 1, base + 2})
			faceVerts = faceVerts[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	if len(m.Faces) == 0 {
		return nil, ErrEmptyMesh
	}
	return m, nil
}

// EncodeBinarySTL сериализует сетку в бинарный STL
func EncodeBinarySTL(m *Mesh) []byte {
	buf := make([]byte, binarySTLHeaderSize+4+len(m.Faces)*binarySTLTriangleSize)
	binary.LittleEndian.PutUint32(buf[binarySTLHeaderSize:], uint32(len(m.Faces)))

	offset := binarySTLHeaderSize + 4
	for _, f := range m.Faces {
		// Нормаль оставляем нулевой, потребители пересчитывают ее сами
		for v := 0; v < 3; v++ {
			p := offset + 12 + v*12
			vert := m.Vertices[f[v]]
			binary.LittleEndian.PutUint32(buf[p:], math.Float32bits(float32(vert[0])))
			binary.LittleEndian.PutUint32(buf[p+4:], math.Float32bits(float32(vert[1])))
			binary.LittleEndian.PutUint32(buf[p+8:], math.Float32bits(float32(vert[2])))
		}
		offset += binarySTLTriangleSize
	}
	return buf
}
