package optimizer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// mlxScript — скрипт фильтров MeshLab: удаление дубликатов и вырожденных
// граней, затем квадрик-децимация до заданной доли граней.
const mlxScript = `<!DOCTYPE FilterScript>
<FilterScript>
 <filter name="Remove Duplicate Faces"/>
 <filter name="Remove Duplicate Vertices"/>
 <filter name="Remove Zero Area Faces"/>
 <filter name="Simplification: Quadric Edge Collapse Decimation">
  <Param type="RichFloat" name="TargetPerc" value="%.4f"/>
  <Param type="RichBool" name="PreserveTopology" value="true"/>
 </filter>
</FilterScript>
`

// MeshLabBackend упрощает сетки через meshlabserver
type MeshLabBackend struct {
	binary string
}

// NewMeshLabBackend создает бэкенд, использующий meshlabserver из PATH
func NewMeshLabBackend() *MeshLabBackend {
	return &MeshLabBackend{binary: "meshlabserver"}
}

// Name возвращает имя бэкенда
func (b *MeshLabBackend) Name() string {
	return "meshlab"
}

// Available проверяет наличие meshlabserver в PATH
func (b *MeshLabBackend) Available() bool {
	_, err := exec.LookPath(b.binary)
	return err == nil
}

// Simplify запускает meshlabserver со сгенерированным скриптом фильтров
func (b *MeshLabBackend) Simplify(ctx context.Context, inputPath, outputPath string, opts Options) error {
	scriptPath := filepath.Join(filepath.Dir(outputPath), "filters.mlx")
	script := fmt.Sprintf(mlxScript, opts.TargetRatio)
	if err := os.WriteFile(scriptPath, []byte(script), 0o600); err != nil {
		return fmt.Errorf("error writing filter script: %w", err)
	}

	cmd := exec.CommandContext(ctx, b.binary, "-i", inputPath, "-o", outputPath, "-s", scriptPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("meshlabserver error: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
