package structpool

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintRegisteredRecords writes one line per registered record (name,
// element size, live page count) to w. Observational only: it never
// mutates Manager state.
func (m *Manager) PrintRegisteredRecords(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tPAGES")
	for rp := m.registry; rp != nil; rp = rp.next {
		for i := 0; i < rp.count; i++ {
			rec := &rp.records[i]
			fmt.Fprintf(tw, "%s\t%d\t%d\n", rec.name, rec.size, countPages(rec))
		}
	}
	tw.Flush()
}

// PrintMemoryUsage reports, per record (or for a single named record if
// name is non-empty), the total application memory obtained from the OS
// versus the bytes currently handed out to live allocations.
func (m *Manager) PrintMemoryUsage(w io.Writer, name string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPAGE_BYTES\tALLOCATED_BYTES\tFREE_BYTES")
	for rp := m.registry; rp != nil; rp = rp.next {
		for i := 0; i < rp.count; i++ {
			rec := &rp.records[i]
			if name != "" && rec.name != name {
				continue
			}
			pages, allocated, free := usage(rec, m.pageSize)
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", rec.name, pages, allocated, free)
		}
	}
	tw.Flush()
}

// PrintBlockUsage writes, per live data page of every record, the
// intra-page chain: each block's offset, status, and size.
func (m *Manager) PrintBlockUsage(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORD\tPAGE\tOFFSET\tSTATUS\tSIZE")
	for rp := m.registry; rp != nil; rp = rp.next {
		for i := 0; i < rp.count; i++ {
			rec := &rp.records[i]
			pageIdx := 0
			for pg := rec.pages; pg != nil; pg = pg.next {
				for h := pg.first; h != nil; h = h.next {
					status := "allocated"
					if h.isFree {
						status = "free"
					}
					fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", rec.name, pageIdx, h.offset, status, h.dataBlockSize)
				}
				pageIdx++
			}
		}
	}
	tw.Flush()
}

func countPages(rec *recordDescriptor) int {
	n := 0
	for pg := rec.pages; pg != nil; pg = pg.next {
		n++
	}
	return n
}

func usage(rec *recordDescriptor, pageSize int) (pageBytes, allocated, free int) {
	for pg := rec.pages; pg != nil; pg = pg.next {
		pageBytes += pageSize
		for h := pg.first; h != nil; h = h.next {
			if h.isFree {
				free += int(h.dataBlockSize)
			} else {
				allocated += int(h.dataBlockSize)
			}
		}
	}
	return
}
