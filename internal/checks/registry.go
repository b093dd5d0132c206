package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[CheckID]Check)
	mu       sync.RWMutex
)

var runOrderIndex = func() map[CheckID]int {
	idx := make(map[CheckID]int, len(RunOrder))
	for i, id := range RunOrder {
		idx[id] = i
	}
	return idx
}()

func Register(c Check) {
	mu.Lock()
	defer mu.Unlock()
	if _, known := runOrderIndex[c.ID()]; !known {
		panic(fmt.Sprintf("check %s is not part of the canonical run order", c.ID()))
	}
	if _, exists := registry[c.ID()]; exists {
		panic(fmt.Sprintf("check %s already registered", c.ID()))
	}
	registry[c.ID()] = c
}

// List returns all registered checks in canonical run order.
func List() []Check {
	mu.RLock()
	defer mu.RUnlock()
	var all []Check
	for _, c := range registry {
		all = append(all, c)
	}
	sortByRunOrder(all)
	return all
}

// Resolve selects checks by a comma-separated ID list. The result is always
// in canonical run order, whatever order the selector used. An empty
// selector means all checks.
func Resolve(selector string) ([]Check, error) {
	if selector == "" {
		return List(), nil
	}

	mu.RLock()
	defer mu.RUnlock()

	var selected []Check
	seen := make(map[CheckID]struct{})
	for _, raw := range strings.Split(selector, ",") {
		id := CheckID(strings.TrimSpace(raw))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		c, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("check not found: %s", id)
		}
		seen[id] = struct{}{}
		selected = append(selected, c)
	}
	sortByRunOrder(selected)
	return selected, nil
}

func sortByRunOrder(cs []Check) {
	sort.Slice(cs, func(i, j int) bool {
		return runOrderIndex[cs[i].ID()] < runOrderIndex[cs[j].ID()]
	})
}
