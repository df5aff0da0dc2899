package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger 创建 zap.Logger：stdout 始终输出，filePath 非空时同时写一份
// 带滚动的日志文件（200MB 切割并压缩）。
func NewLogger(filePath string) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), zapcore.InfoLevel),
	}
	if filePath != "" {
		writer := &lumberjack.Logger{
			Filename:  filePath,
			MaxSize:   200,
			LocalTime: true,
			Compress:  true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(writer), zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
