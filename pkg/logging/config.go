package logging

const (
	LogFileFormat = "2006-01-02.log"
	TimeFormat    = "2006-01-02 15:04:05"

	defaultMaxSizeMB  = 20
	defaultMaxAgeDays = 7
	defaultMaxBackups = 5
)

// ProcessName identifies the component writing the logs
type ProcessName string

const (
	SDKProcess      ProcessName = "triggerx-sdk"
	PipelineProcess ProcessName = "job-pipeline"
	TestProcess     ProcessName = "test"
)

type LoggerConfig struct {
	// LogDir enables file output under LogDir/ProcessName when non-empty
	LogDir        string
	ProcessName   ProcessName
	IsDevelopment bool
	UseColors     bool
}

func NewDefaultConfig(processName ProcessName) LoggerConfig {
	return LoggerConfig{
		ProcessName:   processName,
		IsDevelopment: true,
		UseColors:     true,
	}
}
