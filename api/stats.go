package api

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spudtrooper/bilifollow/log"
)

type clientStats struct {
	mu     sync.Mutex
	routes []string
	durs   map[string][]time.Duration
}

func makeClientStats() *clientStats {
	return &clientStats{durs: map[string][]time.Duration{}}
}

func (s *clientStats) record(route string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.durs[route]; !ok {
		s.routes = append(s.routes, route)
	}
	s.durs[route] = append(s.durs[route], d)
}

func median(durs []time.Duration) time.Duration {
	if len(durs) == 0 {
		return 0
	}
	sorted := append([]time.Duration{}, durs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mean(durs []time.Duration) time.Duration {
	if len(durs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range durs {
		sum += d
	}
	return sum / time.Duration(len(durs))
}

func (s *clientStats) Print() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, route := range s.routes {
		durs := s.durs[route]
		log.Printf("%s stats: samples=%s median=%s mean=%s",
			color.New(color.FgHiWhite).Sprintf("%s", route),
			color.YellowString(fmt.Sprintf("%d", len(durs))),
			color.GreenString(fmt.Sprintf("%v", median(durs))),
			color.CyanString(fmt.Sprintf("%v", mean(durs))))
	}
}
