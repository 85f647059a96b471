package domain

import "sort"

type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

type CheckResult struct {
	Name     string
	Resource string
	Status   CheckStatus
	Message  string
}

func Pass(name, resource, message string) CheckResult {
	return CheckResult{Name: name, Resource: resource, Status: StatusPass, Message: message}
}

func Warn(name, resource, message string) CheckResult {
	return CheckResult{Name: name, Resource: resource, Status: StatusWarn, Message: message}
}

func Fail(name, resource, message string) CheckResult {
	return CheckResult{Name: name, Resource: resource, Status: StatusFail, Message: message}
}

type Report struct {
	Environment string
	Region      string
	AccountID   string
	Results     []CheckResult
}

func (r *Report) Add(results ...CheckResult) {
	r.Results = append(r.Results, results...)
}

// Sort orders results by check name, then resource. Results from concurrent
// checks arrive in arbitrary order.
func (r *Report) Sort() {
	sort.SliceStable(r.Results, func(i, j int) bool {
		if r.Results[i].Name != r.Results[j].Name {
			return r.Results[i].Name < r.Results[j].Name
		}
		return r.Results[i].Resource < r.Results[j].Resource
	})
}

func (r *Report) Count(status CheckStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

func (r *Report) Passed() bool {
	return r.Count(StatusFail) == 0
}

func (r *Report) Failures() []CheckResult {
	var failed []CheckResult
	for _, res := range r.Results {
		if res.Status == StatusFail {
			failed = append(failed, res)
		}
	}
	return failed
}
