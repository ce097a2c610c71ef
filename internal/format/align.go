package format

// AlignBlock returns n aligned up to the next 2880-byte block boundary.
//
// Example:
//
//	AlignBlock(0)    = 0
//	AlignBlock(1)    = 2880
//	AlignBlock(2880) = 2880
//	AlignBlock(2881) = 5760
func AlignBlock(n int64) int64 {
	return Blocks(n) * BlockSize
}

// Blocks returns the number of blocks needed to hold n bytes.
func Blocks(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return (n + BlockAlignmentMask) / BlockSize
}

// BlankCards returns how many blank cards pad a header of n cards (END
// included) to a whole block.
func BlankCards(n int) int {
	return (CardsPerBlock - n%CardsPerBlock) % CardsPerBlock
}
