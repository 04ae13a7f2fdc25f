package frame

// Block is a read-only rectangular view into a Frame.
type Block struct {
	frame *Frame
	row   int
	col   int
	rows  int
	cols  int
}

// Block returns the size x size view whose top-left corner is (row, col).
// The view is clipped at the right and bottom edges, so blocks near those
// edges may be smaller than size. A negative origin yields an empty block.
func (f *Frame) Block(row, col, size int) Block {
	b := Block{frame: f, row: row, col: col}
	if row < 0 || col < 0 || row >= f.rows || col >= f.cols || size <= 0 {
		return b
	}
	b.rows = min(size, f.rows-row)
	b.cols = min(size, f.cols-col)
	return b
}

func (b Block) Row() int {
	return b.row
}

func (b Block) Col() int {
	return b.col
}

func (b Block) Rows() int {
	return b.rows
}

func (b Block) Cols() int {
	return b.cols
}

func (b Block) Channels() int {
	if b.frame == nil {
		return 0
	}
	return b.frame.channels
}

func (b Block) Empty() bool {
	return b.rows == 0 || b.cols == 0
}

func (b Block) SameShape(other Block) bool {
	return b.rows == other.rows && b.cols == other.cols && b.Channels() == other.Channels()
}

// RowSamples returns the samples of row r of the block, relative to its
// origin. The slice aliases the frame.
func (b Block) RowSamples(r int) []uint8 {
	start := b.frame.offset(b.row+r, b.col)
	return b.frame.pix[start : start+b.cols*b.frame.channels]
}
