// Package mesh содержит разбор и измерение треугольных сеток (STL, OBJ).
// Пакет только читает и измеряет геометрию; упрощение сеток выполняют
// внешние инструменты (см. internal/optimizer).
package mesh

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedFormat возвращается для расширений, которые пакет не умеет разбирать
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// ErrEmptyMesh возвращается, когда в файле не найдено ни одной грани
var ErrEmptyMesh = errors.New("mesh contains no faces")

// Vector представляет точку или направление в трехмерном пространстве
type Vector [3]float64

// Face представляет треугольную грань как индексы трех вершин
type Face [3]int

// Mesh представляет треугольную сетку
type Mesh struct {
	Vertices []Vector
	Faces    []Face
}

// Decode разбирает сетку из данных по расширению файла (без точки, в нижнем регистре)
func Decode(data []byte, ext string) (*Mesh, error) {
	switch strings.ToLower(ext) {
	case "stl":
		return DecodeSTL(data)
	case "obj":
		return DecodeOBJ(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Volume вычисляет объем сетки в кубических единицах модели (обычно мм³)
// как сумму знаковых объемов тетраэдров от начала координат.
// Для незамкнутой сетки результат может быть близок к нулю или отрицателен.
func (m *Mesh) Volume() float64 {
	var volume float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		volume += a[0]*(b[1]*c[2]-b[2]*c[1]) +
			a[1]*(b[2]*c[0]-b[0]*c[2]) +
			a[2]*(b[0]*c[1]-b[1]*c[0])
	}
	return volume / 6.0
}

// Bounds возвращает минимальный и максимальный углы осевого габаритного бокса
func (m *Mesh) Bounds() (Vector, Vector) {
	min := Vector{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := Vector{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	if len(m.Vertices) == 0 {
		return Vector{}, Vector{}
	}
	return min, max
}
