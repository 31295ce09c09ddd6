package generation

import "listingcrew/internal/content"

// Status 生成请求状态
// Status of the generation request
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State 当前唯一的生成请求；Result 只在 Succeeded 时有效
// State is the single live generation request; Result is only set when Succeeded
type State struct {
	Status Status
	URL    string
	Result content.Generated
}

func (s State) Pending() bool { return s.Status == StatusPending }

// HasResult reports whether Result holds generated content.
func (s State) HasResult() bool { return s.Status == StatusSucceeded }

func (s State) clone() State {
	out := s
	out.Result = s.Result.Clone()
	return out
}
