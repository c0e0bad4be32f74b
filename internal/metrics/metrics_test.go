package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLookupIncrementsOutcomeCounter(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("answer"))
	ObserveLookup("answer", time.Now())
	after := testutil.ToFloat64(QueriesTotal.WithLabelValues("answer"))

	if after != before+1 {
		t.Errorf("QueriesTotal[answer] = %v, want %v", after, before+1)
	}
}

func TestRecordHopIncrementsHopsTotal(t *testing.T) {
	before := testutil.ToFloat64(HopsTotal)
	RecordHop()
	after := testutil.ToFloat64(HopsTotal)

	if after != before+1 {
		t.Errorf("HopsTotal = %v, want %v", after, before+1)
	}
}
