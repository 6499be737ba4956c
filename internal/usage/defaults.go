package usage

import "time"

// creditPeriod is the rolling window after which used credits reset.
const creditPeriod = 30 * 24 * time.Hour

func defaultUsage() Usage {
	return Usage{
		Plan:     "Starter",
		Limit:    10,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(creditPeriod),
	}
}
