package version

import (
	"fmt"
	"time"
)

// Заполняются через -ldflags при сборке.
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
)

var buildEpoch = time.Date(
	2024, time.June, 1,
	0, 0, 0, 0,
	time.UTC,
)

// Info - метаданные сборки в структурном виде.
type Info struct {
	BuildID   int    `json:"build_id"`
	BuildDate string `json:"build_date"`
	Commit    string `json:"commit"`
	Error     string `json:"error,omitempty"`
}

// buildID считает порядковый номер сборки как число дней от эпохи проекта.
func buildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	// Часы вместо суток: обе даты в UTC, переходов на летнее время нет.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Get возвращает метаданные сборки. Безопасна в любой момент.
func Get() Info {
	info := Info{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
	}

	id, err := buildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	return info
}

// String - читаемая строка для логов и /version.
func String() string {
	info := Get()
	if info.Error != "" {
		return fmt.Sprintf("build unknown (%s)", info.Error)
	}
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("build %d (%s) commit[%s]", info.BuildID, info.BuildDate, commit)
}
