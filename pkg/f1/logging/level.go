package logging

import (
	"bytes"
	"strings"
)

// Level represents different logging levels.
type Level int

const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL
)

const (
	levelNameDebug  = "DEBUG"
	levelNameInfo   = "INFO"
	levelNameNotice = "NOTICE"
	levelNameWarn   = "WARN"
	levelNameError  = "ERROR"
	levelNameFatal  = "FATAL"
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return levelNameDebug
	case INFO:
		return levelNameInfo
	case NOTICE:
		return levelNameNotice
	case WARN:
		return levelNameWarn
	case ERROR:
		return levelNameError
	case FATAL:
		return levelNameFatal
	default:
		return ""
	}
}

//nolint:mnd // ANSI colour codes
func (l Level) color() uint {
	switch l {
	case ERROR, FATAL:
		return 160
	case WARN, NOTICE:
		return 220
	case INFO:
		return 6
	case DEBUG:
		return 8
	default:
		return 37
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(l.String())
	buffer.WriteString(`"`)

	return buffer.Bytes(), nil
}

// GetLevelFromString converts a LOG_LEVEL value into a Level. Unknown values fall back to INFO.
func GetLevelFromString(level string) Level {
	switch strings.ToUpper(level) {
	case levelNameDebug:
		return DEBUG
	case levelNameInfo:
		return INFO
	case levelNameNotice:
		return NOTICE
	case levelNameWarn:
		return WARN
	case levelNameError:
		return ERROR
	case levelNameFatal:
		return FATAL
	default:
		return INFO
	}
}
