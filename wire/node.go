package wire

// Reserved structural tags.
const (
	TagObject = "object"
	TagArray  = "array"
)

// IsReserved reports whether tag names a structural node.
func IsReserved(tag string) bool {
	return tag == TagObject || tag == TagArray
}

// Node is the first, full occurrence of a composite value.
type Node struct {
	ID   int    `json:"id"`
	Tag  string `json:"tag"`
	Data any    `json:"data"`
}

// Ref points back to a Node emitted earlier in the same tree.
type Ref struct {
	ID int `json:"ref"`
}
