// Package report computes and renders distribution statistics for a
// generated collection.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/user/eventseeder/internal/event"
)

// TopOwnerLimit caps the owner distribution table.
const TopOwnerLimit = 10

// TypeCount is one row of the type distribution.
type TypeCount struct {
	Type  event.Type
	Count int
}

// OwnerCount is one row of the owner distribution.
type OwnerCount struct {
	Owner string
	Count int
}

// Summary describes one generation run.
type Summary struct {
	Total       int
	WindowStart time.Time
	WindowEnd   time.Time
	TypeCounts  []TypeCount  // sorted by type name
	TopOwners   []OwnerCount // descending count, ties in first-seen order
}

// Summarize computes per-type counts and the top owners by event count.
func Summarize(events []event.Event, windowStart, windowEnd time.Time) Summary {
	typeCounts := make(map[event.Type]int)
	ownerCounts := make(map[string]int)
	var ownerOrder []string

	for _, e := range events {
		typeCounts[e.Type]++
		if _, seen := ownerCounts[e.Owner]; !seen {
			ownerOrder = append(ownerOrder, e.Owner)
		}
		ownerCounts[e.Owner]++
	}

	types := make([]TypeCount, 0, len(typeCounts))
	for t, n := range typeCounts {
		types = append(types, TypeCount{Type: t, Count: n})
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Type < types[j].Type })

	// Building in first-seen order and sorting stably keeps ties in
	// sampling order.
	owners := make([]OwnerCount, 0, len(ownerOrder))
	for _, o := range ownerOrder {
		owners = append(owners, OwnerCount{Owner: o, Count: ownerCounts[o]})
	}
	sort.SliceStable(owners, func(i, j int) bool { return owners[i].Count > owners[j].Count })
	if len(owners) > TopOwnerLimit {
		owners = owners[:TopOwnerLimit]
	}

	return Summary{
		Total:       len(events),
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		TypeCounts:  types,
		TopOwners:   owners,
	}
}

// Render writes the human-readable report.
func Render(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Generated %d events\n", s.Total)
	fmt.Fprintf(w, "Date range: %s to %s\n", s.WindowStart.Format("2006-01-02"), s.WindowEnd.Format("2006-01-02"))

	fmt.Fprintf(w, "\nEvent type distribution:\n")
	types := tablewriter.NewWriter(w)
	types.SetHeader([]string{"Type", "Count"})
	for _, tc := range s.TypeCounts {
		types.Append([]string{string(tc.Type), fmt.Sprintf("%d", tc.Count)})
	}
	types.Render()

	fmt.Fprintf(w, "\nOwner distribution (top %d):\n", TopOwnerLimit)
	owners := tablewriter.NewWriter(w)
	owners.SetHeader([]string{"Owner", "Events"})
	for _, oc := range s.TopOwners {
		owners.Append([]string{oc.Owner, fmt.Sprintf("%d", oc.Count)})
	}
	owners.Render()
}
