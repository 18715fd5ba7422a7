package app

// Config holds all the driver-level settings for an App instance to run.
// Everything after the driver's own flags — the job name, mode flags, and
// job arguments — travels untouched in JobArgs.
type Config struct {
	LogLevel   string
	LogFormat  string
	LedgerPath string
	WorkDir    string
	JobArgs    []string
}
