package typeddb

import (
	"os"
	"sync/atomic"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple"
	"github.com/ValentinKolb/tKV/lib/db/engines/pebble"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("typeddb")

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// EngineFactory opens (or creates) the engine for an already resolved path
type EngineFactory func(path string) (db.KVDB, error)

// PebbleEngine returns a factory opening a durable pebble engine
func PebbleEngine(opts *pebble.Options) EngineFactory {
	return func(path string) (db.KVDB, error) {
		return pebble.Open(path, opts)
	}
}

// MapleEngine returns a factory creating an in-memory maple engine. The path is
// only used for path validation and diagnostics, nothing is written to it.
func MapleEngine(opts *maple.DBOptions) EngineFactory {
	return func(string) (db.KVDB, error) {
		return maple.NewMapleDB(opts), nil
	}
}

type options struct {
	engine EngineFactory
	logger logger.ILogger
}

// Option configures Open
type Option func(*options)

// WithEngine selects the engine. The default is PebbleEngine(pebble.DefaultOptions()).
func WithEngine(factory EngineFactory) Option {
	return func(o *options) {
		o.engine = factory
	}
}

// WithLogger sets the logger receiving the open diagnostics. The default is Logger.
func WithLogger(l logger.ILogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// --------------------------------------------------------------------------
// Store Handle
// --------------------------------------------------------------------------

// handle owns one engine and counts the DB values and open iterators referring to it
type handle struct {
	engine db.KVDB
	refs   atomic.Int64
}

// acquire adds a reference. It fails once the engine was closed.
func (h *handle) acquire() bool {
	for {
		n := h.refs.Load()
		if n <= 0 {
			return false
		}
		if h.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops a reference and closes the engine when it was the last one
func (h *handle) release() error {
	if h.refs.Add(-1) == 0 {
		return engineError(h.engine.Close())
	}
	return nil
}

// DB is a shared handle to one opened engine. Clone returns another handle to the
// same engine; the engine is closed when the last handle is closed.
// A DB is safe for concurrent use, all calls go straight to the engine.
type DB struct {
	h        *handle
	released atomic.Bool
}

// Open resolves path (see ResolvePath), then opens the store in it, creating the
// directory if it does not exist yet. Whether an existing store is opened or a new
// one is created is logged at info level.
//
// Usage:
//
//	database, err := typeddb.Open("data/tkv")
//	if err != nil {
//		return err
//	}
//	defer database.Close()
func Open(path string, opts ...Option) (*DB, error) {
	o := &options{
		engine: PebbleEngine(pebble.DefaultOptions()),
		logger: Logger,
	}
	for _, opt := range opts {
		opt(o)
	}

	canonicalized, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	if info, statErr := os.Stat(canonicalized); statErr == nil && info.IsDir() {
		o.logger.Infof("Opening existing db: path=%s", canonicalized)
	} else {
		o.logger.Infof("Creating db: path=%s", canonicalized)
	}

	engine, err := o.engine(canonicalized)
	if err != nil {
		return nil, openingError(path, canonicalized, err)
	}

	openTotal.Inc()
	return FromEngine(engine), nil
}

// FromEngine wraps an already opened engine in a new handle. The handle takes
// ownership: closing the last handle closes the engine.
func FromEngine(engine db.KVDB) *DB {
	h := &handle{engine: engine}
	h.refs.Store(1)
	return &DB{h: h}
}

// Clone returns a new handle to the same engine. The receiver must not be closed.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (d *DB) Clone() *DB {
	if d.released.Load() || !d.h.acquire() {
		panic("typeddb: Clone of a closed DB")
	}
	return &DB{h: d.h}
}

// Close releases this handle. The engine is closed when the last handle and the
// last iterator are released. Closing a handle twice is a no-op.
func (d *DB) Close() error {
	if !d.released.CompareAndSwap(false, true) {
		return nil
	}
	return d.h.release()
}

// Info returns the engine's information. It fails with ErrClosed after Close.
func (d *DB) Info() (db.DatabaseInfo, error) {
	engine, err := d.engine()
	if err != nil {
		return db.DatabaseInfo{}, err
	}
	return engine.GetInfo(), nil
}

// engine returns the engine, or ErrClosed if this handle was released
func (d *DB) engine() (db.KVDB, error) {
	if d.released.Load() {
		return nil, engineError(ErrClosed)
	}
	return d.h.engine, nil
}

// --------------------------------------------------------------------------
// Raw store and retrieve
// --------------------------------------------------------------------------

// store writes value under the physical key, overwriting any prior value
func (d *DB) store(key, value []byte) error {
	engine, err := d.engine()
	if err != nil {
		return err
	}
	if err := engine.Put(key, value); err != nil {
		return engineError(err)
	}
	storeTotal.Inc()
	return nil
}

// retrieve reads the value under the physical key. A missing key is (nil, false, nil).
func (d *DB) retrieve(key []byte) ([]byte, bool, error) {
	engine, err := d.engine()
	if err != nil {
		return nil, false, err
	}
	value, found, err := engine.Get(key)
	if err != nil {
		return nil, false, engineError(err)
	}
	countRetrieve(found)
	return value, found, nil
}

// --------------------------------------------------------------------------
// Key Prefixer
// --------------------------------------------------------------------------

// prefixKey returns prefix ++ key. There is no separator and no length prefix,
// so no prefix in use may be a byte prefix of another one.
func prefixKey(prefix, key []byte) []byte {
	buf := make([]byte, 0, len(prefix)+len(key))
	buf = append(buf, prefix...)
	return append(buf, key...)
}

// PrefixStore stores value under prefix ++ key
func (d *DB) PrefixStore(prefix, key, value []byte) error {
	return d.store(prefixKey(prefix, key), value)
}

// PrefixRetrieve returns the value under prefix ++ key.
// The boolean reports whether a value was found; absence is not an error.
func (d *DB) PrefixRetrieve(prefix, key []byte) ([]byte, bool, error) {
	return d.retrieve(prefixKey(prefix, key))
}

// PrefixDelete removes the value under prefix ++ key. A missing key is not an error.
func (d *DB) PrefixDelete(prefix, key []byte) error {
	engine, err := d.engine()
	if err != nil {
		return err
	}
	if err := engine.Delete(prefixKey(prefix, key)); err != nil {
		return engineError(err)
	}
	deleteTotal.Inc()
	return nil
}

// --------------------------------------------------------------------------
// Scan Exposer
// --------------------------------------------------------------------------

// PrefixIterator returns an iterator over all entries whose physical key starts with
// prefix, in ascending byte order of the physical key. Keys returned by the iterator
// include the prefix. The iterator reads from a snapshot taken now and must be closed.
// It holds a reference to the engine, so the engine stays open until the iterator is
// closed even if every DB handle is closed before.
func (d *DB) PrefixIterator(prefix []byte) (db.Iterator, error) {
	engine, err := d.engine()
	if err != nil {
		return nil, err
	}
	if !d.h.acquire() {
		return nil, engineError(ErrClosed)
	}
	it, err := engine.NewPrefixIterator(prefix)
	if err != nil {
		return nil, errors.CombineErrors(engineError(err), d.h.release())
	}
	iteratorTotal.Inc()
	return &engineIterator{Iterator: it, h: d.h}, nil
}

// engineIterator reports iteration failures as ErrCodeEngine errors and releases its
// engine reference on Close
type engineIterator struct {
	db.Iterator
	h      *handle
	err    error
	closed bool
}

func (it *engineIterator) Error() error {
	if it.err == nil {
		it.err = engineError(it.Iterator.Error())
	}
	return it.err
}

func (it *engineIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return errors.CombineErrors(engineError(it.Iterator.Close()), it.h.release())
}
