package obclog

import "github.com/sirupsen/logrus"

// logrusLogger adapts a *logrus.Logger (or *logrus.Entry) to Logger,
// pairing keysAndValues up into structured fields the way logrus.WithFields
// expects.
type logrusLogger struct {
	entry *logrus.Entry
}

// FromLogrus wraps an existing *logrus.Logger. Pass logrus.StandardLogger()
// to use the package-level default.
func FromLogrus(l *logrus.Logger) Logger {
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debug(msg string, kv ...interface{}) {
	l.withFields(kv).Debug(msg)
}

func (l *logrusLogger) Info(msg string, kv ...interface{}) {
	l.withFields(kv).Info(msg)
}

func (l *logrusLogger) Error(msg string, kv ...interface{}) {
	l.withFields(kv).Error(msg)
}

func (l *logrusLogger) withFields(kv []interface{}) *logrus.Entry {
	if len(kv) == 0 {
		return l.entry
	}
	fields := make(logrus.Fields, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	if len(kv)%2 == 1 {
		fields["extra"] = kv[len(kv)-1]
	}
	return l.entry.WithFields(fields)
}
