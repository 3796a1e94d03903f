package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"assethunt-engine/internal/dispatch"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/search"
)

func printResources(w io.Writer, rs []domain.Resource) {
	rows := make([][]string, 0, len(rs))
	for i, r := range rs {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Title, string(r.Category), r.Source, r.License, r.FileSize})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"#", "Title", "Category", "Source", "License", "Size"},
		rows,
		[]columnAlignment{alignRight},
	))
}

// printSummary renders counts by category (taxonomy order) and by source.
func printSummary(w io.Writer, s search.Summary) {
	var catRows [][]string
	for _, c := range domain.Categories() {
		if n := s.ByCategory[c]; n > 0 {
			catRows = append(catRows, []string{string(c), strconv.Itoa(n)})
		}
	}
	fmt.Fprintln(w, renderTable([]string{"Category", "Count"}, catRows, []columnAlignment{alignLeft, alignRight}))

	names := make([]string, 0, len(s.BySource))
	for name := range s.BySource {
		names = append(names, name)
	}
	sort.Strings(names)
	srcRows := make([][]string, 0, len(names))
	for _, name := range names {
		srcRows = append(srcRows, []string{name, strconv.Itoa(s.BySource[name])})
	}
	fmt.Fprintln(w, renderTable([]string{"Source", "Count"}, srcRows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(w, "Total: %d\n", s.Total)
}

func printReport(w io.Writer, rep dispatch.Report) {
	fmt.Fprintf(w, "Download manager reachable: %s\n", yesNo(rep.Reachable))

	rows := make([][]string, 0, rep.Total())
	for _, o := range rep.Successful {
		rows = append(rows, []string{"queued", o.Job.Resource.Title, o.Job.Dir, o.TaskID})
	}
	for _, o := range rep.Failed {
		rows = append(rows, []string{"failed", o.Job.Resource.Title, o.Job.Dir, o.Reason})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable([]string{"Result", "Title", "Directory", "Task / Reason"}, rows, nil))
	}
	fmt.Fprintf(w, "Submitted %d of %d jobs (%d failed)\n", len(rep.Successful), rep.Total(), len(rep.Failed))
}

func printJobs(w io.Writer, jobs []domain.JobStatus) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No active downloads.")
		return
	}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			j.GID,
			j.Status,
			fmt.Sprintf("%.1f%%", j.Progress()),
			humanize.Bytes(uint64(max(j.CompletedLength, 0))) + " / " + humanize.Bytes(uint64(max(j.TotalLength, 0))),
			humanize.Bytes(uint64(max(j.DownloadSpeed, 0))) + "/s",
			j.Path,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"GID", "Status", "Progress", "Size", "Speed", "Path"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}
