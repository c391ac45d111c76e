package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cubeMesh возвращает куб 10x10x10 мм с началом в (0,0,0):
// 8 вершин, 12 треугольных граней с нормалями наружу
func cubeMesh() *Mesh {
	return &Mesh{
		Vertices: []Vector{
			{0, 0, 0}, {10, 0, 0}, {10, 10, 0}, {0, 10, 0},
			{0, 0, 10}, {10, 0, 10}, {10, 10, 10}, {0, 10, 10},
		},
		Faces: []Face{
			{0, 2, 1}, {0, 3, 2}, // низ
			{4, 5, 6}, {4, 6, 7}, // верх
			{0, 1, 5}, {0, 5, 4}, // перед
			{2, 3, 7}, {2, 7, 6}, // зад
			{0, 4, 7}, {0, 7, 3}, // лево
			{1, 2, 6}, {1, 6, 5}, // право
		},
	}
}

func TestVolume(t *testing.T) {
	cube := cubeMesh()
	assert.InDelta(t, 1000.0, cube.Volume(), 1e-9)

	// Вывернутая сетка дает отрицательный объем
	inverted := cubeMesh()
	for i, f := range inverted.Faces {
		inverted.Faces[i] = Face{f[0], f[2], f[1]}
	}
	assert.InDelta(t, -1000.0, inverted.Volume(), 1e-9)
}

func TestBounds(t *testing.T) {
	cube := cubeMesh()
	min, max := cube.Bounds()
	assert.Equal(t, Vector{0, 0, 0}, min)
	assert.Equal(t, Vector{10, 10, 10}, max)

	empty := &Mesh{}
	min, max = empty.Bounds()
	assert.Equal(t, Vector{}, min)
	assert.Equal(t, Vector{}, max)
}

func TestBinarySTLRoundtrip(t *testing.T) {
	cube := cubeMesh()
	data := EncodeBinarySTL(cube)

	decoded, err := DecodeSTL(data)
	require.NoError(t, err)

	assert.Len(t, decoded.Faces, 12)
	// Бинарный STL дублирует вершины по граням
	assert.Len(t, decoded.Vertices, 36)
	assert.InDelta(t, 1000.0, decoded.Volume(), 1e-3)

	min, max := decoded.Bounds()
	assert.Equal(t, Vector{0, 0, 0}, min)
	assert.Equal(t, Vector{10, 10, 10}, max)
}

func TestDecodeASCIISTL(t *testing.T) {
	data := []byte(`solid tetra
facet normal 0 0 -1
 outer loop
  vertex 0 0 0
  vertex 0 1 0
  vertex 1 0 0
 endloop
endfacet
facet normal 0 -1 0
 outer loop
  vertex 0 0 0
  vertex 1 0 0
  vertex 0 0 1
 endloop
endfacet
facet normal -1 0 0
 outer loop
  vertex 0 0 0
  vertex 0 0 1
  vertex 0 1 0
 endloop
endfacet
facet normal 1 1 1
 outer loop
  vertex 1 0 0
  vertex 0 1 0
  vertex 0 0 1
 endloop
endfacet
endsolid tetra
`)

	m, err := DecodeSTL(data)
	require.NoError(t, err)
	assert.Len(t, m.Faces, 4)
	// Объем единичного тетраэдра = 1/6
	assert.InDelta(t, 1.0/6.0, m.Volume(), 1e-9)
}

func TestDecodeSTLErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty data", data: []byte{}},
		{name: "Truncated binary", data: make([]byte, 90)},
		{name: "ASCII without faces", data: []byte("solid empty\nfacet\nendsolid empty\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSTL(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeOBJ(t *testing.T) {
	data := []byte(`# куб 10x10x10
v 0 0 0
v 10 0 0
v 10 10 0
v 0 10 0
v 0 0 10
v 10 0 10
v 10 10 10
v 0 10 10
f 1 3 2
f 1 4 3
f 5 6 7
f 5 7 8
f 1 2 6
f 1 6 5
f 3 4 8
f 3 8 7
f 1 5 8
f 1 8 4
f 2 3 7
f 2 7 6
`)

	m, err := DecodeOBJ(data)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Faces, 12)
	assert.InDelta(t, 1000.0, m.Volume(), 1e-9)
}

func TestDecodeOBJPolygonFace(t *testing.T) {
	// Четырехугольная грань с индексами вида v/vt/vn разбивается веером
	data := []byte(`v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1/1/1 2/2/1 3/3/1 4/4/1
`)

	m, err := DecodeOBJ(data)
	require.NoError(t, err)
	assert.Len(t, m.Faces, 2)
	assert.Equal(t, Face{0, 1, 2}, m.Faces[0])
	assert.Equal(t, Face{0, 2, 3}, m.Faces[1])
}

func TestDecodeOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "No faces", data: "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{name: "Index out of range", data: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 5\n"},
		{name: "Malformed vertex", data: "v 0 0\nf 1 2 3\n"},
		{name: "Invalid index", data: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOBJ([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeOBJNegativeIndices(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	m, err := DecodeOBJ(data)
	require.NoError(t, err)
	assert.Equal(t, Face{0, 1, 2}, m.Faces[0])
}

func TestDecodeDispatch(t *testing.T) {
	cube := EncodeBinarySTL(cubeMesh())

	m, err := Decode(cube, "stl")
	require.NoError(t, err)
	assert.Len(t, m.Faces, 12)

	_, err = Decode(cube, "step")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
