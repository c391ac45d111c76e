package optimizer

import "context"

// Options содержит параметры упрощения сетки
type Options struct {
	// TargetRatio — доля граней, сохраняемая при децимации (0..1)
	TargetRatio float64
}

// Backend определяет интерфейс внешней возможности упрощения сетки.
// Реализации оборачивают сторонние инструменты; сами алгоритмы
// упрощения принадлежат этим инструментам.
type Backend interface {
	// Name возвращает имя бэкенда для логов и диагностики
	Name() string

	// Available проверяет, доступна ли возможность (инструмент установлен)
	Available() bool

	// Simplify читает сетку из inputPath, удаляет дубликаты и вырожденные
	// грани, выполняет децимацию и записывает результат в outputPath
	Simplify(ctx context.Context, inputPath, outputPath string, opts Options) error
}
