package logger

// SetupLogger installs the default logger: stdout filtered at logLevel, stderr at ERROR.
func SetupLogger(logLevel string, logJSON, logSource bool) {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(logLevel)
	cfg.JSON = logJSON
	cfg.AddSource = logSource
	Init(cfg)
}

// NewForTests returns a logger that drops everything.
func NewForTests() Logger {
	return NewLogger(TestConfig())
}

func InitForTests() {
	Init(TestConfig())
}
