package optimizer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// blenderScript — скрипт для headless Blender: очистка сетки
// (merge by distance, удаление вырожденных граней) и модификатор Decimate.
// Пути и доля граней передаются аргументами после "--".
const blenderScript = `import bpy
import sys

argv = sys.argv[sys.argv.index("--") + 1:]
src, dst, ratio = argv[0], argv[1], float(argv[2])

bpy.ops.wm.read_factory_settings(use_empty=True)
if src.lower().endswith(".obj"):
    bpy.ops.wm.obj_import(filepath=src)
else:
    bpy.ops.import_mesh.stl(filepath=src)

obj = bpy.context.selected_objects[0]
bpy.context.view_layer.objects.active = obj
bpy.ops.object.mode_set(mode="EDIT")
bpy.ops.mesh.select_all(action="SELECT")
bpy.ops.mesh.remove_doubles()
bpy.ops.mesh.dissolve_degenerate()
bpy.ops.object.mode_set(mode="OBJECT")

mod = obj.modifiers.new("decimate", "DECIMATE")
mod.ratio = ratio
bpy.ops.object.modifier_apply(modifier=mod.name)

if dst.lower().endswith(".obj"):
    bpy.ops.wm.obj_export(filepath=dst, export_selected_objects=True)
else:
    bpy.ops.export_mesh.stl(filepath=dst, use_selection=True)
`

// BlenderBackend упрощает сетки через headless Blender
type BlenderBackend struct {
	binary string
}

// NewBlenderBackend создает бэкенд, использующий blender из PATH
func NewBlenderBackend() *BlenderBackend {
	return &BlenderBackend{binary: "blender"}
}

// Name возвращает имя бэкенда
func (b *BlenderBackend) Name() string {
	return "blender"
}

// Available проверяет наличие blender в PATH
func (b *BlenderBackend) Available() bool {
	_, err := exec.LookPath(b.binary)
	return err == nil
}

// Simplify запускает blender в фоновом режиме с python-скриптом децимации
func (b *BlenderBackend) Simplify(ctx context.Context, inputPath, outputPath string, opts Options) error {
	scriptPath := filepath.Join(filepath.Dir(outputPath), "decimate.py")
	if err := os.WriteFile(scriptPath, []byte(blenderScript), 0o600); err != nil {
		return fmt.Errorf("error writing blender script: %w", err)
	}

	cmd := exec.CommandContext(ctx, b.binary,
		"--background", "--factory-startup", "--python", scriptPath,
		"--", inputPath, outputPath, strconv.FormatFloat(opts.TargetRatio, 'f', 4, 64))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("blender error: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
