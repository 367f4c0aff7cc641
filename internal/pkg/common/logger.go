package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger 全局日誌實例
	Logger  *zap.Logger
	LogMode string // 只宣告，不初始化

	// 級別對應的終端顏色與縮寫
	levelStyles = map[zapcore.Level]struct {
		color string
		tag   string
	}{
		zapcore.DebugLevel: {"\033[36m", "DBG"},
		zapcore.InfoLevel:  {"\033[32m", "INF"},
		zapcore.WarnLevel:  {"\033[33m", "WRN"},
		zapcore.ErrorLevel: {"\033[31m", "ERR"},
		zapcore.FatalLevel: {"\033[35m", "FAT"},
	}
	resetColor = "\033[0m"

	// concise 模式下仍輸出的 info 訊息
	conciseAllowed = map[string]bool{
		"請求完成":                   true,
		"啟動應用":                   true,
		"Server exited":          true,
		"Shutting down server...": true,
	}
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:    "time",
		LevelKey:   "level",
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			style, ok := levelStyles[l]
			if !ok {
				enc.AppendString(l.String())
				return
			}
			enc.AppendString(style.color + style.tag + resetColor)
		},
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("15:04:05.000"))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func parseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger 初始化日誌系統：終端彩色輸出 + logs/app.log JSON 落地
func InitLogger(logLevel string) error {
	level := parseLevel(logLevel)

	// LOG_MODE 必須在 .env 載入後才讀得到
	LogMode = os.Getenv("LOG_MODE")

	if err := os.MkdirAll("logs", 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile("logs/app.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(logFile), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stdout), level),
	)

	Logger = zap.New(core,
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", "fridge-recommender")),
	)
	zap.ReplaceGlobals(Logger)

	return nil
}

// LogInfo 記錄信息日誌；concise 模式只留請求與啟停訊息
func LogInfo(msg string, fields ...zap.Field) {
	if LogMode == "concise" && !conciseAllowed[msg] {
		return
	}
	Logger.Info(msg, fields...)
}

// LogError 記錄錯誤日誌
func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// LogWarn 記錄警告日誌
func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// LogDebug 記錄調試日誌
func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// LogFatal 記錄致命錯誤日誌
func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Sync 同步日誌緩衝
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogCacheHit 記錄快取命中
func LogCacheHit(cacheType, key string) {
	LogInfo("快取命中", zap.String("類型", cacheType))
}

// LogCacheMiss 記錄快取未命中
func LogCacheMiss(cacheType, key string) {
	LogInfo("快取未命中", zap.String("類型", cacheType))
}

// LogRecommendation 記錄一次推薦計算
func LogRecommendation(recipes, returned int, duration time.Duration, requestID string) {
	LogInfo("推薦計算完成",
		zap.Int("候選食譜數", recipes),
		zap.Int("回傳筆數", returned),
		zap.Duration("耗時", duration),
		zap.String("request_id", requestID),
	)
}
