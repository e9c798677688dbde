package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	dto "github.com/prometheus/client_model/go"
)

const requestsMetric = "fileshare_client_requests_total"

// Stats prints the request counters collected in this process.
func (a *App) Stats(ctx context.Context) error {
	families, err := a.metrics.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var rows [][3]string
	for _, mf := range families {
		if mf.GetName() != requestsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			rows = append(rows, [3]string{
				label(m, "endpoint"),
				label(m, "outcome"),
				fmt.Sprintf("%.0f", m.GetCounter().GetValue()),
			})
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No requests yet")
		return nil
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPOINT\tOUTCOME\tCOUNT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r[0], r[1], r[2])
	}
	return tw.Flush()
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
