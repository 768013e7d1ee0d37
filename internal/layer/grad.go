package layer

import "gonum.org/v1/gonum/mat"

// Grad holds accumulated gradients for one Dense layer.
type Grad struct {
	W *mat.Dense
	B *mat.VecDense
}

// NewGrad returns zeroed gradient buffers for a layer of the given size.
func NewGrad(size int) *Grad {
	return &Grad{
		W: mat.NewDense(size, size, nil),
		B: mat.NewVecDense(size, nil),
	}
}

// Scale multiplies every accumulated value by c.
func (g *Grad) Scale(c float64) {
	g.W.Scale(c, g.W)
	g.B.ScaleVec(c, g.B)
}

// Flat returns a copy of the gradients in the same order as Dense.Params.
func (g *Grad) Flat() []float64 {
	w := g.W.RawMatrix().Data
	b := g.B.RawVector().Data
	flat := make([]float64, 0, len(w)+len(b))
	flat = append(flat, w...)
	flat = append(flat, b...)
	return flat
}
