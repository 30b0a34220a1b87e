package jsonpath

const (
	kindObj containerKind = iota
	kindArr
)

// containerKind tells objects and arrays apart, both for pattern components
// and for traversal frames.
type containerKind uint8

// component is one compiled pattern segment. A kindObj component selects an
// object member by key, a kindArr component an array element by index.
type component struct {
	kind     containerKind
	wildcard bool
	key      string
	index    int
}

// frame is the position inside one open container.
type frame struct {
	kind   containerKind
	key    string // last key seen in an object
	hasKey bool
	index  int // current element of an array, -1 before the first one
}

type status uint8

const (
	statusMatching status = iota
	statusCollecting
)
