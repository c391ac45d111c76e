package optimizer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/InQaaaaGit/meshprice.git/internal/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testThreshold = 100 * 1024 * 1024

// stubBackend реализует интерфейс Backend для тестов
type stubBackend struct {
	name         string
	available    bool
	simplifyFunc func(ctx context.Context, inputPath, outputPath string, opts Options) error
	calls        int
}

func (s *stubBackend) Name() string    { return s.name }
func (s *stubBackend) Available() bool { return s.available }

func (s *stubBackend) Simplify(ctx context.Context, inputPath, outputPath string, opts Options) error {
	s.calls++
	if s.simplifyFunc != nil {
		return s.simplifyFunc(ctx, inputPath, outputPath, opts)
	}
	return errors.New("not implemented")
}

// cubeSTL возвращает бинарный STL куба 10x10x10 мм (12 граней)
func cubeSTL() []byte {
	cube := &mesh.Mesh{
		Vertices: []mesh.Vector{
			{0, 0, 0}, {10, 0, 0}, {10, 10, 0}, {0, 10, 0},
			{0, 0, 10}, {10, 0, 10}, {10, 10, 10}, {0, 10, 10},
		},
		Faces: []mesh.Face{
			{0, 2, 1}, {0, 3, 2},
			{4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4},
			{2, 3, 7}, {2, 7, 6},
			{0, 4, 7}, {0, 7, 3},
			{1, 2, 6}, {1, 6, 5},
		},
	}
	return mesh.EncodeBinarySTL(cube)
}

// decimatingStub возвращает бэкенд, который честно уменьшает число граней
// до заданной доли, перекодируя STL
func decimatingStub(name string) *stubBackend {
	return &stubBackend{
		name:      name,
		available: true,
		simplifyFunc: func(ctx context.Context, inputPath, outputPath string, opts Options) error {
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}
			m, err := mesh.DecodeSTL(data)
			if err != nil {
				return err
			}
			target := int(float64(len(m.Faces)) * opts.TargetRatio)
			m.Faces = m.Faces[:target]
			return os.WriteFile(outputPath, mesh.EncodeBinarySTL(m), 0o600)
		},
	}
}

func newTestGateway(t *testing.T, backends ...Backend) (*Gateway, string) {
	t.Helper()
	tempDir := t.TempDir()
	gw := NewGatewayWithBackends(testThreshold, 0.7, 0, tempDir, zap.NewNop(), backends...)
	return gw, tempDir
}

// assertNoTempResidue проверяет, что после вызова Optimize во временном
// каталоге не осталось файлов
func assertNoTempResidue(t *testing.T, tempDir string) {
	t.Helper()
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files left behind after Optimize")
}

func TestNeedsOptimization(t *testing.T) {
	gw, _ := newTestGateway(t)

	tests := []struct {
		name string
		size int64
		want bool
	}{
		{name: "Zero size", size: 0, want: false},
		{name: "50 MB", size: 50 * 1024 * 1024, want: false},
		{name: "Exactly 100 MB", size: 100 * 1024 * 1024, want: false},
		{name: "One byte over threshold", size: 100*1024*1024 + 1, want: true},
		{name: "150 MB", size: 150 * 1024 * 1024, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gw.NeedsOptimization(tt.size))
		})
	}
}

func TestOptimize_NoBackendsAvailable(t *testing.T) {
	unavailable := &stubBackend{name: "stub", available: false}
	gw, tempDir := newTestGateway(t, unavailable)

	original := cubeSTL()
	outcome := gw.Optimize(context.Background(), Artifact{Name: "model.stl", Data: original})

	assert.False(t, outcome.WasOptimized)
	assert.Equal(t, original, outcome.Data)
	assert.Equal(t, int64(len(original)), outcome.OriginalSize)
	assert.Equal(t, int64(len(original)), outcome.OptimizedSize)
	assert.Equal(t, "no optimization backends available", outcome.Diagnostic)
	assert.Zero(t, unavailable.calls)
	assertNoTempResidue(t, tempDir)
}

func TestOptimize_BackendError(t *testing.T) {
	failing := &stubBackend{
		name:      "failing",
		available: true,
		simplifyFunc: func(ctx context.Context, inputPath, outputPath string, opts Options) error {
			return errors.New("simplification crashed")
		},
	}
	gw, tempDir := newTestGateway(t, failing)

	original := cubeSTL()
	outcome := gw.Optimize(context.Background(), Artifact{Name: "model.stl", Data: original})

	assert.False(t, outcome.WasOptimized)
	assert.Equal(t, original, outcome.Data)
	assert.Contains(t, outcome.Diagnostic, "simplification crashed")
	assert.Equal(t, 1, failing.calls)
	assertNoTempResidue(t, tempDir)
}

func TestOptimize_Success(t *testing.T) {
	backend := decimatingStub("stub")
	gw, tempDir := newTestGateway(t, backend)

	original := cubeSTL()
	outcome := gw.Optimize(context.Background(), Artifact{Name: "model.stl", Data: original})

	assert.True(t, outcome.WasOptimized)
	assert.Equal(t, "stub", outcome.Backend)
	assert.Equal(t, int64(len(original)), outcome.OriginalSize)
	assert.Less(t, outcome.OptimizedSize, outcome.OriginalSize)

	// Результат — валидная сетка с числом граней не более 70% от исходного
	m, err := mesh.DecodeSTL(outcome.Data)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(m.Faces), 12*7/10)

	assertNoTempResidue(t, tempDir)
}

func TestOptimize_ResultNotSmaller(t *testing.T) {
	copying := &stubBackend{
		name:      "copying",
		available: true,
		simplifyFunc: func(ctx context.Context, inputPath, outputPath string, opts Options) error {
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}
			return os.WriteFile(outputPath, data, 0o600)
		},
	}
	gw, tempDir := newTestGateway(t, copying)

	original := cubeSTL()
	outcome := gw.Optimize(context.Background(), Artifact{Name: "model.stl", Data: original})

	assert.False(t, outcome.WasOptimized)
	assert.Equal(t, original, outcome.Data)
	assert.Contains(t, outcome.Diagnostic, "not smaller")
	assertNoTempResidue(t, tempDir)
}

func TestOptimize_FallsThroughToNextBackend(t *testing.T) {
	failing := &stubBackend{
		name:      "failing",
		available: true,
		simplifyFunc: func(ctx context.Context, inputPath, outputPath string, opts Options) error {
			return errors.New("boom")
		},
	}
	working := decimatingStub("working")
	gw, tempDir := newTestGateway(t, failing, working)

	outcome := gw.Optimize(context.Background(), Artifact{Name: "model.stl", Data: cubeSTL()})

	assert.True(t, outcome.WasOptimized)
	assert.Equal(t, "working", outcome.Backend)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
	assertNoTempResidue(t, tempDir)
}

func TestOptimize_SkipsUnavailableBackend(t *testing.T) {
	unavailable := &stubBackend{name: "unavailable", available: false}
	working := decimatingStub("working")
	gw, tempDir := newTestGateway(t, unavailable, working)

	outcome := gw.Optimize(context.Background(), Artifact{Name: "model.stl", Data: cubeSTL()})

	assert.True(t, outcome.WasOptimized)
	assert.Equal(t, "working", outcome.Backend)
	assert.Zero(t, unavailable.calls)
	assertNoTempResidue(t, tempDir)
}

func TestOptimize_StripsPathFromArtifactName(t *testing.T) {
	var gotInput string
	backend := &stubBackend{
		name:      "inspecting",
		available: true,
		simplifyFunc: func(ctx context.Context, inputPath, outputPath string, opts Options) error {
			gotInput = inputPath
			return errors.New("stop")
		},
	}
	gw, tempDir := newTestGateway(t, backend)

	gw.Optimize(context.Background(), Artifact{Name: "../../etc/model.stl", Data: cubeSTL()})

	assert.NotContains(t, gotInput, "..")
	assertNoTempResidue(t, tempDir)
}

func TestOptimize_CanceledContext(t *testing.T) {
	backend := &stubBackend{
		name:      "ctx",
		available: true,
		simplifyFunc: func(ctx context.Context, inputPath, outputPath string, opts Options) error {
			return ctx.Err()
		},
	}
	gw, tempDir := newTestGateway(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	original := cubeSTL()
	outcome := gw.Optimize(ctx, Artifact{Name: "model.stl", Data: original})

	assert.False(t, outcome.WasOptimized)
	assert.Equal(t, original, outcome.Data)
	assertNoTempResidue(t, tempDir)
}
