package typeddb

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// Counters are registered in the default VictoriaMetrics set and can be exposed
// with metrics.WritePrometheus (see `tkv stats`).
var (
	storeTotal    = metrics.NewCounter(`tkv_typeddb_store_total`)
	deleteTotal   = metrics.NewCounter(`tkv_typeddb_delete_total`)
	retrieveHit   = metrics.NewCounter(`tkv_typeddb_retrieve_total{result="hit"}`)
	retrieveMiss  = metrics.NewCounter(`tkv_typeddb_retrieve_total{result="miss"}`)
	iteratorTotal = metrics.NewCounter(`tkv_typeddb_iterators_total`)
	openTotal     = metrics.NewCounter(`tkv_typeddb_open_total`)
)

func countRetrieve(found bool) {
	if found {
		retrieveHit.Inc()
	} else {
		retrieveMiss.Inc()
	}
}

func countError(code ErrCode) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`tkv_typeddb_errors_total{code=%q}`, code.String())).Inc()
}
