package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

func (cli *commandLine) listTenants() error {
	tenants := cli.registry.All()
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].Key < tenants[j].Key })

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tLEGACY ID\tNAME\tPLAN\tLOCATION")
	for _, t := range tenants {
		legacy := "-"
		if t.LegacyID > 0 {
			legacy = fmt.Sprintf("%d", t.LegacyID)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Key, legacy, t.Name, t.Plan, t.Location)
	}
	return w.Flush()
}
