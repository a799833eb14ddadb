package mathutil

// Mat is a 2D float64 matrix stored as row-major [][]float64.
type Mat = [][]float64

// NewMat creates a rows x cols matrix initialized to zero.
// All rows share one backing array.
func NewMat(rows, cols int) Mat {
	m := make(Mat, rows)
	data := make([]float64, rows*cols)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// CloneMat returns a deep copy of m with the same shape.
func CloneMat(m Mat) Mat {
	if len(m) == 0 {
		return Mat{}
	}
	out := NewMat(len(m), len(m[0]))
	for i := range m {
		copy(out[i], m[i])
	}
	return out
}

// IsRect reports whether every row of m has exactly cols columns.
func IsRect(m Mat, cols int) bool {
	for _, row := range m {
		if len(row) != cols {
			return false
		}
	}
	return true
}
