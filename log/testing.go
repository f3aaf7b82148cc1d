package log

// TB is the subset of testing.TB needed by the test logger.
type TB interface {
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
	Helper()
}

// Testing is a logger that writes to a test's log and fails it on errors.
type Testing struct {
	TB
	Default
}

func (l *Testing) Debug(m string, s ...interface{}) {
	l.Helper()
	l.Logf(format("DEB ", m, s, l.Tags))
}
func (l *Testing) Error(m string, s ...interface{}) {
	l.Helper()
	l.Errorf(format("ERR ", m, s, l.Tags))
}
func (l *Testing) Crit(m string, s ...interface{}) {
	l.Helper()
	l.Fatalf(format("CRI ", m, s, l.Tags))
}
func (l *Testing) With(tags ...interface{}) Logger {
	return &Testing{l.TB, *l.Default.with(tags)}
}
