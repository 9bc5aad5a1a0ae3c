package commerce

import "fmt"

// Verdict classifies the evaluation of one candidate good for a load
type Verdict int

const (
	// Eligible goods may be added; Value is their marginal trade value
	Eligible Verdict = iota

	// Ineligible goods are skipped this round for a business reason
	Ineligible

	// Failed goods could not be evaluated and are dropped from the load
	Failed
)

func (v Verdict) String() string {
	switch v {
	case Eligible:
		return "eligible"
	case Ineligible:
		return "ineligible"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Evaluation is the outcome of weighing one good for a load
type Evaluation struct {
	GoodID  int
	Verdict Verdict
	Value   float64
	Reason  string
	Err     error
}

func eligible(id int, value float64) Evaluation {
	return Evaluation{GoodID: id, Verdict: Eligible, Value: value}
}

func ineligible(id int, reason string) Evaluation {
	return Evaluation{GoodID: id, Verdict: Ineligible, Reason: reason}
}

func failed(id int, err error) Evaluation {
	return Evaluation{GoodID: id, Verdict: Failed, Reason: err.Error(), Err: err}
}
