package mesh

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// DecodeOBJ разбирает Wavefront OBJ: строки "v" задают вершины,
// строки "f" задают грани. Многоугольные грани разбиваются веером
// на треугольники. Текстурные координаты и нормали игнорируются.
func DecodeOBJ(data []byte) (*Mesh, error) {
	m := &Mesh{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
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
			m.Vertices = append(m.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("face with fewer than 3 vertices: %q", scanner.Text())
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseOBJIndex(ref, len(m.Vertices))
				if err != nil {
					return nil, err
				}
				indices = append(indices, idx)
			}
			// Веерная триангуляция многоугольника
			for i := 1; i < len(indices)-1; i++ {
				m.Faces = append(m.Faces, Face{indices[0], indices[i], indices[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	if len(m.Faces) == 0 {
		return nil, ErrEmptyMesh
	}
	return m, nil
}

// parseOBJIndex разбирает ссылку на вершину вида "7", "7/1" или "7/1/3".
// Индексы в OBJ начинаются с единицы; отрицательные отсчитываются с конца.
func parseOBJIndex(ref string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", ref, err)
	}
	if idx < 0 {
		idx = vertexCount + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("face index %q out of range", ref)
	}
	return idx, nil
}
