package pebble

import (
	"sync/atomic"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures the pebble engine during Open
type Options struct {
	Sync   bool           // fsync the WAL on every write
	Logger logger.ILogger // receives pebble's internal log output (nil = pebble default)
}

// DefaultOptions returns the default engine options
func DefaultOptions() *Options {
	return &Options{
		Sync: true,
	}
}

// --------------------------------------------------------------------------
// Core pebble engine structure
// --------------------------------------------------------------------------

// pebbleImpl implements db.KVDB on top of a pebble LSM instance
type pebbleImpl struct {
	path      string
	pdb       *pebble.DB
	writeOpts *pebble.WriteOptions
	closed    atomic.Bool
}

// Open opens the pebble store in the directory path, creating it if it is missing.
// The parent of path must exist. All other tuning options are pebble's defaults.
func Open(path string, opts *Options) (db.KVDB, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	pebbleOpts := &pebble.Options{}
	if opts.Logger != nil {
		pebbleOpts.Logger = pebbleLogger{opts.Logger}
	}

	pdb, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		return nil, err
	}

	writeOpts := pebble.NoSync
	if opts.Sync {
		writeOpts = pebble.Sync
	}

	return &pebbleImpl{
		path:      path,
		pdb:       pdb,
		writeOpts: writeOpts,
	}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see db.KVDB)
// --------------------------------------------------------------------------

func (p *pebbleImpl) Put(key, value []byte) error {
	if p.closed.Load() {
		return p.errClosed()
	}
	if err := p.pdb.Set(key, value, p.writeOpts); err != nil {
		return errors.Wrapf(err, "pebble: put %q", key)
	}
	return nil
}

func (p *pebbleImpl) Delete(key []byte) error {
	if p.closed.Load() {
		return p.errClosed()
	}
	if err := p.pdb.Delete(key, p.writeOpts); err != nil {
		return errors.Wrapf(err, "pebble: delete %q", key)
	}
	return nil
}

func (p *pebbleImpl) Get(key []byte) ([]byte, bool, error) {
	if p.closed.Load() {
		return nil, false, p.errClosed()
	}
	val, closer, err := p.pdb.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "pebble: get %q", key)
	}
	defer closer.Close()

	// the slice returned by pebble is only valid until the closer is closed
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (p *pebbleImpl) NewPrefixIterator(prefix []byte) (db.Iterator, error) {
	if p.closed.Load() {
		return nil, p.errClosed()
	}

	snap := p.pdb.NewSnapshot()
	iter := snap.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: db.PrefixUpperBound(prefix),
	})

	return &prefixIterator{snap: snap, iter: iter}, nil
}

func (p *pebbleImpl) SupportsFeature(feature db.Feature) bool {
	supported := db.FeaturePut | db.FeatureGet | db.FeatureDelete | db.FeaturePrefixScan | db.FeatureDurable
	return feature&supported == feature
}

func (p *pebbleImpl) GetInfo() db.DatabaseInfo {
	m := p.pdb.Metrics()

	meta := &struct {
		Path         string `json:"path"`
		Sync         bool   `json:"sync"`
		MemTableSize uint64 `json:"memtable_size"`
		WALFiles     int64  `json:"wal_files"`
	}{
		Path:         p.path,
		Sync:         p.writeOpts.Sync,
		MemTableSize: m.MemTable.Size,
		WALFiles:     m.WAL.Files,
	}

	return db.DatabaseInfo{
		SizeBytes: int(m.DiskSpaceUsage()),
		DbType:    db.ImplPebble,
		SupportedFeatures: []db.Feature{
			db.FeaturePut, db.FeatureGet, db.FeatureDelete,
			db.FeaturePrefixScan, db.FeatureDurable,
		},
		Metadata: meta,
	}
}

// errClosed is returned by all operations after Close, pebble itself panics instead
func (p *pebbleImpl) errClosed() error {
	return errors.Newf("pebble: db %s is closed", p.path)
}

func (p *pebbleImpl) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.pdb.Close()
}

// --------------------------------------------------------------------------
// Iterator
// --------------------------------------------------------------------------

// prefixIterator adapts a bounded pebble iterator over a snapshot to db.Iterator
type prefixIterator struct {
	snap    *pebble.Snapshot
	iter    *pebble.Iterator
	started bool
	valid   bool
	closed  bool
	err     error
}

func (it *prefixIterator) Next() bool {
	if it.closed {
		return false
	}
	if !it.started {
		it.started = true
		it.valid = it.iter.First()
	} else if it.valid {
		it.valid = it.iter.Next()
	}
	if !it.valid {
		it.err = it.iter.Error()
	}
	return it.valid
}

func (it *prefixIterator) Key() []byte {
	if !it.valid {
		return nil
	}
	return append([]byte(nil), it.iter.Key()...)
}

func (it *prefixIterator) Value() []byte {
	if !it.valid {
		return nil
	}
	return append([]byte{}, it.iter.Value()...)
}

func (it *prefixIterator) Error() error {
	if it.err != nil {
		return errors.Wrap(it.err, "pebble: iterate")
	}
	return nil
}

func (it *prefixIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	it.valid = false
	iterErr := it.iter.Close()
	snapErr := it.snap.Close()
	return errors.CombineErrors(iterErr, snapErr)
}

// --------------------------------------------------------------------------
// Logger bridge
// --------------------------------------------------------------------------

// pebbleLogger forwards pebble's log output to a dragonboat style logger
type pebbleLogger struct {
	l logger.ILogger
}

func (p pebbleLogger) Infof(format string, args ...interface{}) {
	p.l.Debugf(format, args...)
}

func (p pebbleLogger) Errorf(format string, args ...interface{}) {
	p.l.Errorf(format, args...)
}

func (p pebbleLogger) Fatalf(format string, args ...interface{}) {
	p.l.Panicf(format, args...)
}
