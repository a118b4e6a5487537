// Package examples holds small models built directly on kernel.Kernel,
// meant to be copied and grown into a real model the way the reference
// smpl distribution ships a tutorial single-server queue. RunQueue below
// is that tutorial model: customers arrive by a Poisson process, queue
// for one server, and depart — the same scenario spec.md's S2/S3/S4
// properties are stated against.
package examples

import (
	"fmt"

	"github.com/archsim/smpl/kernel"
)

const (
	eventArrive = 1
	eventDepart = 2
)

// QueueResult summarizes one RunQueue run.
type QueueResult struct {
	Customers   int
	Utilization float64
	MeanQueue   float64
}

// RunQueue simulates customers customers through a single-server
// facility with exponential interarrival and service times, and
// returns the facility's statistics at the end of the run.
func RunQueue(k *kernel.Kernel, customers int, meanInterarrival, meanService float64) (QueueResult, error) {
	if err := k.Init("single-server queue"); err != nil {
		return QueueResult{}, err
	}

	server, err := k.Facility("server", 1)
	if err != nil {
		return QueueResult{}, err
	}

	nextCustomer := 0
	scheduleArrival := func() error {
		if nextCustomer >= customers {
			return nil
		}
		nextCustomer++
		delay := k.Rand().Expntl(meanInterarrival)
		return k.Schedule(eventArrive, delay, kernel.IntToken(nextCustomer))
	}

	if err := scheduleArrival(); err != nil {
		return QueueResult{}, err
	}

	departed := 0
	for departed < customers {
		eventCode, token, ok := k.Cause()
		if !ok {
			return QueueResult{}, fmt.Errorf("examples: event list ran dry with %d customers left", customers-departed)
		}

		switch eventCode {
		case eventArrive:
			result, err := k.Request(server, token, 0)
			if err != nil {
				return QueueResult{}, err
			}
			if result == kernel.Reserved {
				delay := k.Rand().Expntl(meanService)
				if err := k.Schedule(eventDepart, delay, token); err != nil {
					return QueueResult{}, err
				}
			}
			// A customer woken from the queue comes back as eventArrive
			// too; only a fresh arrival schedules the next one.
			if token == kernel.IntToken(nextCustomer) {
				if err := scheduleArrival(); err != nil {
					return QueueResult{}, err
				}
			}

		case eventDepart:
			if err := k.Release(server, token); err != nil {
				return QueueResult{}, err
			}
			departed++
		}
	}

	u, err := k.U(server)
	if err != nil {
		return QueueResult{}, err
	}
	lq, err := k.Lq(server)
	if err != nil {
		return QueueResult{}, err
	}

	return QueueResult{
		Customers:   customers,
		Utilization: u,
		MeanQueue:   lq,
	}, nil
}
