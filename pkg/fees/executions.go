package fees

import "github.com/trigg3rX/triggerx-go-sdk/pkg/types"

// Executions is how many times the job is expected to run within its time frame.
// Interval time jobs run ceil(timeFrame/interval) times, custom scripts floor(timeFrame/interval),
// everything else once. The result is never below 1.
func Executions(input *types.JobInput) int64 {
	tf := input.TimeFrame
	switch t := input.Trigger.(type) {
	case *types.TimeTrigger:
		if t.ScheduleType == types.ScheduleInterval && t.TimeInterval > 0 {
			return atLeastOne((tf + t.TimeInterval - 1) / t.TimeInterval)
		}
	case *types.CustomScriptTrigger:
		if t.TimeInterval > 0 {
			return atLeastOne(tf / t.TimeInterval)
		}
	}
	return 1
}

func atLeastOne(n int64) int64 {
	if n < 1 {
		return 1
	}
	return n
}
