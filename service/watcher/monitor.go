package watcher

import (
	"log"
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

var monitor *Monitor

// Monitor keeps Watcher stats.
type Monitor struct {
	sync.Mutex
	pollDur    *movingaverage.MovingAverage
	changedAvg *movingaverage.MovingAverage
	pollsDone  int
	itemsMoved int
	stopCh     chan struct{}
}

// PollDone records one completed poll round-trip.
func (m *Monitor) PollDone(changed int, dur time.Duration) {
	m.Lock()
	defer m.Unlock()

	m.pollsDone++
	m.itemsMoved += changed
	m.pollDur.Add(float64(dur/time.Microsecond) / 1000.0)
	m.changedAvg.Add(float64(changed))
}

// Start starts the Monitor worker.
func (m *Monitor) Start() {
	if m.stopCh != nil {
		return
	}

	m.stopCh = make(chan struct{})
	go m.worker()
}

// Stop stops the Monitor worker.
func (m *Monitor) Stop() {
	if m.stopCh == nil {
		return
	}

	close(m.stopCh)
}

// worker does the actual job.
func (m *Monitor) worker() {
	const period = 60 * time.Second

	tickCh := time.Tick(period)
	for {
		select {
		case <-m.stopCh:
			// Stop the monitor
			return
		case <-tickCh:
			// Print the report
			m.Lock()

			pollsPerMin := float64(m.pollsDone) / (float64(period) / float64(time.Minute))
			log.Printf("Monitor:")
			log.Printf("  - Polls / min:         %.2f", pollsPerMin)
			log.Printf("  - Items changed:       %d", m.itemsMoved)
			log.Printf("  - Poll dur [ms]:       %.2f", m.pollDur.Avg())
			log.Printf("  - Changed / poll avg:  %.2f", m.changedAvg.Avg())
			m.pollsDone = 0
			m.itemsMoved = 0

			m.Unlock()
		}
	}
}

func init() {
	monitor = &Monitor{
		pollDur:    movingaverage.New(3),
		changedAvg: movingaverage.New(3),
	}
}
