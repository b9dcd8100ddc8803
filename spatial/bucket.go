package spatial

// Bucket holds the entity ids stored in a leaf.
// The backing slice is kept across Clear so a rebuilt tree reuses its storage.
type Bucket struct {
	ids []int
}

// NewBucket creates a bucket with preallocated id storage
func NewBucket(initialCapacity int) Bucket {
	return Bucket{ids: make([]int, 0, initialCapacity)}
}

// Add appends an id
func (b *Bucket) Add(id int) {
	b.ids = append(b.ids, id)
}

// IDs returns the stored ids in insertion order.
// The slice aliases the bucket and is only valid until the next Add or Clear.
func (b *Bucket) IDs() []int {
	return b.ids
}

// Len returns the number of stored ids
func (b *Bucket) Len() int {
	return len(b.ids)
}

// Clear removes all ids (but keeps capacity)
func (b *Bucket) Clear() {
	b.ids = b.ids[:0]
}
