package log

import (
	// Stdlib
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	// Vendor
	"github.com/fatih/color"
	"github.com/shiena/ansicolor"
)

type (
	Level  uint32
	Logger bool
)

const (
	Trace Level = iota
	Debug
	Verbose
	Info
	Off
)

var v = Info

var (
	outputMu sync.Mutex
	output   io.Writer = ansicolor.NewAnsiColorWriter(os.Stderr)
)

func SetV(level Level) {
	atomic.StoreUint32((*uint32)(&v), uint32(level))
}

func V(level Level) Logger {
	if atomic.LoadUint32((*uint32)(&v)) > uint32(level) {
		return Logger(false)
	}
	return Logger(true)
}

// SetOutput replaces the writer the log lines are written into.
// It returns the writer that was being used before.
func SetOutput(w io.Writer) io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	previous := output
	output = w
	return previous
}

// Lock and Unlock can be used to print multiple lines without them being
// interleaved with other log output. Use the Unsafe* methods in between.
func (l Logger) Lock() {
	outputMu.Lock()
}

func (l Logger) Unlock() {
	outputMu.Unlock()
}

func (l Logger) write(s string) {
	if l {
		io.WriteString(output, s)
	}
}

var (
	runTag      = color.CyanString("[RUN]")
	okTag       = color.GreenString("[OK]")
	skipTag     = color.WhiteString("[SKIP]")
	warnTag     = color.YellowString("[WARN]")
	failTag     = color.RedString("[FAIL]")
	rollbackTag = color.YellowString("[ROLLBACK]")
	logTag      = color.CyanString("[LOG]")
)

// Tags are padded on the visible text, the color codes do not count.
func line(tag string, width int, msg string) string {
	const column = 11
	pad := column - width
	if pad < 1 {
		pad = 1
	}
	return fmt.Sprintf("%v%*s%v\n", tag, pad, "", msg)
}

// Unsafe* methods expect the output to be locked already.

func (l Logger) UnsafeRun(msg string) {
	l.write(line(runTag, len("[RUN]"), msg))
}

func (l Logger) UnsafeOk(msg string) {
	l.write(line(okTag, len("[OK]"), msg))
}

func (l Logger) UnsafeSkip(msg string) {
	l.write(line(skipTag, len("[SKIP]"), msg))
}

func (l Logger) UnsafeWarn(msg string) {
	l.write(line(warnTag, len("[WARN]"), msg))
}

func (l Logger) UnsafeFail(msg string) {
	l.write(line(failTag, len("[FAIL]"), msg))
}

func (l Logger) UnsafeRollback(msg string) {
	l.write(line(rollbackTag, len("[ROLLBACK]"), msg))
}

func (l Logger) UnsafeLog(msg string) {
	l.write(line(logTag, len("[LOG]"), msg))
}

func (l Logger) UnsafeNewLine(msg string) {
	l.write(line("", 0, msg))
}

func (l Logger) UnsafeHint(hint string) {
	if hint == "" {
		return
	}
	l.write("\n" + hint)
	if hint[len(hint)-1] != '\n' {
		l.write("\n")
	}
}

func (l Logger) UnsafePrint(v ...interface{}) {
	l.write(fmt.Sprint(v...))
}

func (l Logger) UnsafePrintln(v ...interface{}) {
	l.write(fmt.Sprintln(v...))
}

func (l Logger) Run(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeRun(msg)
}

func (l Logger) Ok(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeOk(msg)
}

func (l Logger) Skip(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeSkip(msg)
}

func (l Logger) Warn(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeWarn(msg)
}

func (l Logger) Fail(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeFail(msg)
}

func (l Logger) Rollback(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeRollback(msg)
}

func (l Logger) Log(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeLog(msg)
}

func (l Logger) NewLine(msg string) {
	l.Lock()
	defer l.Unlock()
	l.UnsafeNewLine(msg)
}

func (l Logger) Print(v ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.UnsafePrint(v...)
}

func (l Logger) Printf(format string, v ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.write(fmt.Sprintf(format, v...))
}

func (l Logger) Println(v ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.UnsafePrintln(v...)
}

func Run(msg string) {
	V(Info).Run(msg)
}

func Ok(msg string) {
	V(Info).Ok(msg)
}

func Skip(msg string) {
	V(Info).Skip(msg)
}

func Warn(msg string) {
	V(Info).Warn(msg)
}

func Fail(msg string) {
	V(Info).Fail(msg)
}

func Rollback(msg string) {
	V(Info).Rollback(msg)
}

func Log(msg string) {
	V(Info).Log(msg)
}

func NewLine(msg string) {
	V(Info).NewLine(msg)
}

func Print(v ...interface{}) {
	V(Info).Print(v...)
}

func Printf(format string, v ...interface{}) {
	V(Info).Printf(format, v...)
}

func Println(v ...interface{}) {
	V(Info).Println(v...)
}

// Levels ----------------------------------------------------------------------

var ErrUnknownLevel = errors.New("unknown log level")

var levelToStringMap = map[Level]string{
	Trace:   "trace",
	Debug:   "debug",
	Verbose: "verbose",
	Info:    "info",
	Off:     "off",
}

func LevelToString(level Level) (string, bool) {
	s, ok := levelToStringMap[level]
	return s, ok
}

func MustLevelToString(level Level) string {
	s, ok := LevelToString(level)
	if !ok {
		panic(ErrUnknownLevel)
	}
	return s
}

func StringToLevel(levelString string) (Level, bool) {
	for level, s := range levelToStringMap {
		if s == levelString {
			return level, true
		}
	}
	return 0, false
}

func MustStringToLevel(levelString string) Level {
	level, ok := StringToLevel(levelString)
	if !ok {
		panic(ErrUnknownLevel)
	}
	return level
}

// LevelStrings returns the level names ordered from the most verbose one.
func LevelStrings() []string {
	return []string{"trace", "debug", "verbose", "info", "off"}
}
