package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/seedtk/clustereport/internal/cluster"
)

// tabularReporter produces the minimal two-column report consumed by
// downstream scripts: one line per member, cluster display id first.
type tabularReporter struct {
	out     *bufio.Writer
	tracker displayTracker
}

func newTabularReporter(out io.Writer) *tabularReporter {
	return &tabularReporter{out: bufio.NewWriter(out)}
}

func (r *tabularReporter) ScanGroup(group *cluster.Group) error {
	return nil
}

func (r *tabularReporter) WriteHeader() error {
	r.tracker.reset()
	_, err := fmt.Fprintln(r.out, "cluster_id\tmember_id")
	return err
}

func (r *tabularReporter) WriteCluster(cl *cluster.Cluster) error {
	clID, ok := r.tracker.next(cl)
	if !ok {
		return nil
	}
	for _, member := range cl.Members {
		if _, err := fmt.Fprintf(r.out, "%s\t%s\n", clID, member); err != nil {
			return err
		}
	}
	return nil
}

func (r *tabularReporter) Close() error {
	return r.out.Flush()
}

// rawReporter dumps one line per cluster: display id, height, score, and
// the comma-joined member list.
type rawReporter struct {
	out     *bufio.Writer
	tracker displayTracker
}

func newRawReporter(out io.Writer) *rawReporter {
	return &rawReporter{out: bufio.NewWriter(out)}
}

func (r *rawReporter) ScanGroup(group *cluster.Group) error {
	return nil
}

func (r *rawReporter) WriteHeader() error {
	r.tracker.reset()
	_, err := fmt.Fprintln(r.out, "cluster_id\theight\tscore\tmembers")
	return err
}

func (r *rawReporter) WriteCluster(cl *cluster.Cluster) error {
	clID, ok := r.tracker.next(cl)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(r.out, "%s\t%g\t%.4f\t%s\n",
		clID, cl.Height, cl.Score, strings.Join(cl.Members, ","))
	return err
}

func (r *rawReporter) Close() error {
	return r.out.Flush()
}

// indentedReporter writes a human-skimmable text outline: a header line
// per cluster, then one indented line per member.
type indentedReporter struct {
	out     *bufio.Writer
	tracker displayTracker
}

func newIndentedReporter(out io.Writer) *indentedReporter {
	return &indentedReporter{out: bufio.NewWriter(out)}
}

func (r *indentedReporter) ScanGroup(group *cluster.Group) error {
	return nil
}

func (r *indentedReporter) WriteHeader() error {
	r.tracker.reset()
	return nil
}

func (r *indentedReporter) WriteCluster(cl *cluster.Cluster) error {
	clID, ok := r.tracker.next(cl)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(r.out, "%s: size %d, height %g, score %.4f\n",
		clID, cl.Size(), cl.Height, cl.Score)
	if err != nil {
		return err
	}
	for _, member := range cl.Members {
		if _, err := fmt.Fprintf(r.out, "    %s\n", member); err != nil {
			return err
		}
	}
	return nil
}

func (r *indentedReporter) Close() error {
	return r.out.Flush()
}
