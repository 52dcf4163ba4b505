package logic

// CodeBuffer holds up to CodeLength entered keys.
// Its length is always in [0, CodeLength].
type CodeBuffer struct {
	keys [CodeLength]byte
	n    int
}

// Append adds a key. Returns false, leaving the buffer unchanged, when full.
func (b *CodeBuffer) Append(key byte) bool {
	if b.n >= CodeLength {
		return false
	}
	b.keys[b.n] = key
	b.n++
	return true
}

// Len returns the number of buffered keys.
func (b *CodeBuffer) Len() int {
	return b.n
}

// Full reports whether a complete attempt has been entered.
func (b *CodeBuffer) Full() bool {
	return b.n == CodeLength
}

// Matches reports whether the buffer is full and equals code position for position.
// A partial buffer never matches.
func (b *CodeBuffer) Matches(code string) bool {
	if !b.Full() || len(code) != CodeLength {
		return false
	}
	for i := 0; i < CodeLength; i++ {
		if b.keys[i] != code[i] {
			return false
		}
	}
	return true
}

// Clear empties the buffer and wipes the stored keys.
func (b *CodeBuffer) Clear() {
	b.keys = [CodeLength]byte{}
	b.n = 0
}
