package logging

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestObservedLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("held joints changed", "constraint", "left_arm", "held", 2)
	logger.Infof("bound %d constraints", 3)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	entries := logs.All()
	test.That(t, entries[0].Message, test.ShouldEqual, "held joints changed")
	test.That(t, entries[0].ContextMap()["constraint"], test.ShouldEqual, "left_arm")
	test.That(t, entries[0].ContextMap()["held"], test.ShouldEqual, int64(2))
	test.That(t, entries[1].Message, test.ShouldEqual, "bound 3 constraints")
}

func TestSubloggerNameAndLevel(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("arm")
	subsub := sub.Sublogger("ik")

	subsub.Info("hello")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].LoggerName, test.ShouldEqual, "arm.ik")

	sub.SetLevel(WARN)
	test.That(t, sub.GetLevel(), test.ShouldEqual, WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)

	sub.Info("dropped")
	sub.Warn("kept")
	logger.Debug("parent still debug")
	test.That(t, logs.Len(), test.ShouldEqual, 3)
	test.That(t, logs.FilterMessage("dropped").Len(), test.ShouldEqual, 0)
	test.That(t, logs.FilterMessage("kept").Len(), test.ShouldEqual, 1)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.out)
	}
	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBlankLoggerDrops(t *testing.T) {
	logger := NewBlankLogger("quiet")
	logger.Error("nobody hears this")
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestReplaceGlobal(t *testing.T) {
	prev := Global()
	defer ReplaceGlobal(prev)

	logger, logs := NewObservedTestLogger(t)
	ReplaceGlobal(logger)
	Global().Warnw("rig reloaded", "constraints", 2)
	test.That(t, logs.FilterMessage("rig reloaded").Len(), test.ShouldEqual, 1)
}

func TestConsoleEncoding(t *testing.T) {
	enc := zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		LoggerName: "arm",
		Message:    "target out of reach",
		Stack:      "goroutine 1 [running]",
	}, []zapcore.Field{zap.Int("held", 5)})
	test.That(t, err, test.ShouldBeNil)
	out := buf.String()
	buf.Free()

	test.That(t, out, test.ShouldContainSubstring, "2026-01-02T03:04:05")
	test.That(t, out, test.ShouldContainSubstring, "WARN")
	test.That(t, out, test.ShouldContainSubstring, "arm")
	test.That(t, out, test.ShouldContainSubstring, "target out of reach")
	test.That(t, out, test.ShouldContainSubstring, "held")
	test.That(t, out, test.ShouldNotContainSubstring, "goroutine")
}
