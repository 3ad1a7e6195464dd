package document

// StringRef is a zero-copy reference into either a Document's source buffer
// or its interned string pool. Which one it points at is carried in the
// pool flag alongside the offset/length pair, so StringRef is a flat value
// and a Document's string slices never need per-string heap objects.
type StringRef struct {
	offset uint32
	length uint32
	pool   bool
}

// emptyStringRef is the zero-length, zero-offset ref used for "no type
// annotation" and similar absent-string sentinels.
var emptyStringRef = StringRef{}

// IsEmpty reports whether r refers to the empty string.
func (r StringRef) IsEmpty() bool {
	return r.length == 0
}

// StringPool owns the source buffer a Document was parsed from (borrowed,
// not copied, unless the caller requested copy-on-parse) and a separate
// append-only buffer into which DOMBuilder copies every string it stores.
type StringPool struct {
	source []byte
	pool   []byte
	interned map[string]StringRef
}

func newStringPool() StringPool {
	return StringPool{
		interned: make(map[string]StringRef, 64),
	}
}

// SetSource installs the original input buffer that source-backed StringRefs
// index into. It must be called before any FromSource ref is resolved.
func (p *StringPool) SetSource(b []byte) {
	p.source = b
}

// FromSource returns a StringRef that aliases p's source buffer directly,
// at [offset, offset+length). DOMBuilder does not call it: it interns every
// string it stores.
func (p *StringPool) FromSource(offset, length int) StringRef {
	if length == 0 {
		return emptyStringRef
	}
	return StringRef{offset: uint32(offset), length: uint32(length), pool: false}
}

// Intern copies s into the pool buffer, deduplicating against strings
// already interned, and returns a StringRef to the (possibly shared) copy.
// DOMBuilder uses it for every string it stores: names, type annotations,
// string values and retained numeric literals.
func (p *StringPool) Intern(s string) StringRef {
	if len(s) == 0 {
		return emptyStringRef
	}
	if ref, ok := p.interned[s]; ok {
		return ref
	}
	offset := len(p.pool)
	p.pool = append(p.pool, s...)
	ref := StringRef{offset: uint32(offset), length: uint32(len(s)), pool: true}
	p.interned[s] = ref
	return ref
}

// Resolve returns the string r refers to.
func (p *StringPool) Resolve(r StringRef) string {
	if r.length == 0 {
		return ""
	}
	if r.pool {
		return string(p.pool[r.offset : r.offset+r.length])
	}
	return string(p.source[r.offset : r.offset+r.length])
}
