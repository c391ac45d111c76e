// Package buildinfo предоставляет информацию о сборке приложения:
// версию, дату сборки и commit hash, переопределяемые через ldflags.
package buildinfo

import "fmt"

// Info содержит информацию о сборке приложения
type Info struct {
	Version string
	Date    string
	Commit  string
}

// NewInfo создает структуру с информацией о сборке,
// подставляя "N/A" вместо пустых значений
func NewInfo(version, date, commit string) *Info {
	if version == "" {
		version = "N/A"
	}
	if date == "" {
		date = "N/A"
	}
	if commit == "" {
		commit = "N/A"
	}
	return &Info{Version: version, Date: date, Commit: commit}
}

// Print выводит информацию о сборке в консоль
func (info *Info) Print() {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
