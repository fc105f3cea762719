package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.Mutex

	// Log 전역 로거 인스턴스
	Log *zap.Logger
	// Sugar 편의 메서드가 포함된 로거
	Sugar *zap.SugaredLogger
)

// Init 로거 초기화. level은 debug, info, warn, error 중 하나
func Init(level string) error {
	l, err := build(level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	Log = l
	Sugar = l.Sugar()
	return nil
}

func build(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// access log와 같은 JSON 형식으로 출력
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		lvl,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// Named returns a named child of the global logger, initializing it on first use
func Named(name string) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Log == nil {
		Log, _ = build("info")
		Sugar = Log.Sugar()
	}
	return Log.Named(name)
}

// GetLogger 이름이 지정된 로거 반환
func GetLogger(name string) *zap.SugaredLogger {
	return Named(name).Sugar()
}

// Sync 로거 버퍼 플러시
func Sync() {
	mu.Lock()
	l := Log
	mu.Unlock()
	if l != nil {
		_ = l.Sync()
	}
}
