package gst

// defaultInitialSize is the initial mmap size a fresh persistent file
// grows to before any text is indexed: large enough that typical inputs
// never need a mid-build resize, small enough not to waste disk on short
// ones. the persistent backend doubles from here as needed.
const defaultInitialSize int64 = 64 << 20

// PersistOpts configures BuildPersistent. LoadPersistent takes only a
// path and opens the file read-only.
type PersistOpts struct {
	// Path is the backing file. BuildPersistent creates it (truncating
	// any existing file).
	Path string

	// InitialSize is the file's starting mmap size in bytes. Zero means
	// defaultInitialSize.
	InitialSize int64

	// Logger receives resize/flush/recovery diagnostics. Nil means a
	// logger that writes to stderr.
	Logger Logger
}

func (o PersistOpts) withDefaults() PersistOpts {
	if o.InitialSize <= 0 {
		o.InitialSize = defaultInitialSize
	}
	if o.Logger == nil {
		o.Logger = newDefaultLogger()
	}
	return o
}
