package logger

import (
	"log"
	"os"
)

var (
	debugMode = false
	infoLog   = log.New(os.Stdout, "[INFO] ", log.LstdFlags|log.Lmsgprefix)
	debugLog  = log.New(os.Stdout, "[DEBUG] ", log.LstdFlags|log.Lmsgprefix)
	errorLog  = log.New(os.Stderr, "[ERROR] ", log.LstdFlags|log.Lmsgprefix)
)

// SetDebug 开启或关闭调试日志，启动时根据配置调用一次
func SetDebug(debug bool) {
	debugMode = debug
}

// Info 记录常规运行信息 (启动、曲库生成等)
func Info(format string, v ...interface{}) {
	infoLog.Printf(format, v...)
}

// Debug 记录调试信息 (单次推荐的细节)，仅在调试模式下输出
func Debug(format string, v ...interface{}) {
	if debugMode {
		debugLog.Printf(format, v...)
	}
}

// Error 记录错误信息，输出到 stderr
func Error(format string, v ...interface{}) {
	errorLog.Printf(format, v...)
}

// Fatal 记录错误信息并终止进程
func Fatal(format string, v ...interface{}) {
	errorLog.Fatalf(format, v...)
}
