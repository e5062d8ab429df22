// Package stats aggregates State into the counters the admin API
// surfaces: inventory/slot/hold counts, operations by status, agent
// count, and per-service tick durations.
package stats

import (
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// Stats is the aggregate snapshot returned by Calculate.
type Stats struct {
	InventoriesInMem int `json:"inventories_in_mem"`
	TotalSlots       int `json:"total_slots"`
	FreeSlots        int `json:"free_slots"`

	CurrentHolds int `json:"current_holds"`

	OperationsPending    int `json:"operations_pending"`
	OperationsInProgress int `json:"operations_in_progress"`
	OperationsComplete   int `json:"operations_complete"`
	OperationsAborted    int `json:"operations_aborted"`

	AgentsConnected int `json:"agents_connected"`

	ServicesTickTimesMicros map[string]int64 `json:"services_tick_times_micros"`
}

// Calculate walks every registry in st and produces a Stats snapshot.
// Callers are expected to hold st's lock (via State.With) for the
// duration, matching every other multi-registry read in the operator.
func Calculate(st *state.State) Stats {
	inventories := st.Inventories.IterInventories()

	totalSlots := 0
	freeSlots := 0
	for _, inv := range inventories {
		totalSlots += len(inv.Slots)
		for _, slot := range inv.Slots {
			if slot == nil {
				freeSlots++
			}
		}
	}

	tickTimes := make(map[string]int64, len(st.Metrics.ServicesTickTime))
	for name, d := range st.Metrics.ServicesTickTime {
		tickTimes[name] = d.Microseconds()
	}

	return Stats{
		InventoriesInMem: len(inventories),
		TotalSlots:       totalSlots,
		FreeSlots:        freeSlots,

		CurrentHolds: len(st.Holds.Iter()),

		OperationsPending:    len(st.Operations.Iter(state.Pending)),
		OperationsInProgress: len(st.Operations.Iter(state.InProgress)),
		OperationsComplete:   len(st.Operations.Iter(state.Complete)),
		OperationsAborted:    len(st.Operations.Iter(state.Aborted)),

		AgentsConnected: len(st.Agents.Iter()),

		ServicesTickTimesMicros: tickTimes,
	}
}
