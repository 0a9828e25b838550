package cache

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// StrategyKey identifies a build by target group and strategy name: "group|strategy"
func StrategyKey(group, strategy string) string {
	return group + "|" + strategy
}

// AlgorithmKey extends StrategyKey with the builder that produced the schedule
func AlgorithmKey(group, strategy, algorithm string) string {
	return StrategyKey(group, strategy) + "|" + algorithm
}

// PinnedKey identifies a pinned build: "group|PINNED|subject:professor,..." with pairs sorted by subject
func PinnedKey(group string, pins map[string]string) string {
	var pairs strings.Builder
	for _, subject := range slices.Sorted(maps.Keys(pins)) {
		fmt.Fprintf(&pairs, "%v:%v,", subject, pins[subject])
	}
	return group + "|PINNED|" + pairs.String()
}
