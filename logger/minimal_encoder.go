package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Gruvbox dark palette
const (
	colorFg       = "\x1b[38;5;223m"
	colorAqua     = "\x1b[38;5;108m"
	colorOrange   = "\x1b[38;5;208m"
	colorYellow   = "\x1b[38;5;214m"
	colorBlue     = "\x1b[38;5;109m"
	colorPurple   = "\x1b[38;5;175m"
	colorRed      = "\x1b[38;5;167m"
	colorRedBg    = "\x1b[48;5;88m"
	colorYellowBg = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a compact console encoder.
// Format: "13:04:35  t.session  Translated declaration  Point fsharp"
type minimalEncoder struct {
	zapcore.Encoder // base encoder for With() field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(colorAqua)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown when it is not INFO
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if values := extractFieldValues(fields); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return colorOrange
	}
	return colorYellow
}

// levelColorString returns bold + colored + background for non-INFO levels
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return colorPurple + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	default:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: typegen.session -> t.session
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues keeps only the values of well-known fields, colored.
// Input: {"type": "Point", "lang": "fsharp", "count": 3}
// Output: "Point fsharp (3)"
func extractFieldValues(fields []zapcore.Field) string {
	var values []string
	for _, field := range fields {
		val := getFieldValue(field)
		if val == "" {
			continue
		}
		switch field.Key {
		case FieldType, FieldField, FieldRef:
			values = append(values, colorBlue+val+colorReset)
		case FieldLanguage, FieldFile:
			values = append(values, colorFg+val+colorReset)
		case FieldCount:
			values = append(values, colorFg+"("+colorPurple+val+colorReset+colorFg+")"+colorReset)
		case FieldDurationMS:
			values = append(values, colorPurple+val+colorReset+"ms")
		case FieldError:
			values = append(values, colorRed+val+colorReset)
		}
	}
	return strings.Join(values, " ")
}
