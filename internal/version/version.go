package version

import (
	"fmt"
	"time"
)

// Заполняются линкером через -ldflags -X.
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

var epoch = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

// Info — метаданные сборки в структурированном виде.
type Info struct {
	BuildID   int    `json:"buildId"`
	BuildDate string `json:"buildDate,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Branch    string `json:"branch,omitempty"`
}

// Current возвращает метаданные текущей сборки. BuildID — число дней от
// эпохи проекта; ноль у локальных сборок без даты.
func Current() Info {
	info := Info{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
	}
	if t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC); err == nil && !t.Before(epoch) {
		// Часы вместо суток напрямую: обе даты в UTC, но так не зависит
		// от переходов времени.
		info.BuildID = int(t.Sub(epoch).Hours() / 24)
	}
	return info
}

// String возвращает человекочитаемую строку сборки.
func String() string {
	info := Current()
	if info.BuildID == 0 {
		return "Build local"
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s]",
		info.BuildID, info.BuildDate, info.Commit, info.Branch)
}
